package step

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// NullDuration is a nullable time.Duration, in the same vein as the nullable
// types provided by package gopkg.in/guregu/null.v3. It serializes to JSON as
// an integer nanosecond count, or null when not valid.
type NullDuration struct {
	time.Duration
	Valid bool
}

// NullDurationFrom returns a new valid NullDuration from a time.Duration.
func NullDurationFrom(d time.Duration) NullDuration {
	return NullDuration{d, true}
}

// MarshalJSON returns the JSON representation of d.
func (d NullDuration) MarshalJSON() ([]byte, error) {
	if !d.Valid {
		return []byte(`null`), nil
	}
	return json.Marshal(int64(d.Duration))
}

// UnmarshalJSON converts JSON data to a valid NullDuration.
func (d *NullDuration) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte(`null`)) {
		*d = NullDuration{}
		return nil
	}
	var ns int64
	if err := json.Unmarshal(data, &ns); err != nil {
		return err
	}
	*d = NullDuration{time.Duration(ns), true}
	return nil
}

// ValueOrZero returns the underlying duration if valid or zero otherwise. It
// matches the existing guregu/null API.
func (d NullDuration) ValueOrZero() time.Duration {
	if !d.Valid {
		return 0
	}
	return d.Duration
}

// FormatNano renders a nanosecond duration the way step logs display it, as
// whole seconds followed by the millisecond remainder, e.g. "1 sec 253 ms".
func FormatNano(ns int64) string {
	secs := ns / int64(time.Second)
	millis := ns/int64(time.Millisecond) - secs*1000
	return fmt.Sprintf("%d sec %d ms", secs, millis)
}
