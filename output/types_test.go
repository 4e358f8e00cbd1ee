package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type collectingOutput struct {
	RecordBuffer
}

func (*collectingOutput) Description() string { return "collecting" }
func (*collectingOutput) Start() error        { return nil }
func (*collectingOutput) Stop() error         { return nil }

func TestListenerForwardsRecords(t *testing.T) {
	t.Parallel()
	o := &collectingOutput{}
	l := Listener(o)

	records := makeRecords(3)
	for _, r := range records {
		l.OnRecord(r)
	}

	got := o.GetBufferedRecords()
	require.Len(t, got, 3)
	assert.Equal(t, records, got)
}
