// Package step models the records an instrumented WebDriver session emits:
// one Record per observation point (before/after an action or passive query,
// or a failure), numbered from a per-session Timing context, plus the locator
// normalization that turns raw driver output back into readable By
// expressions.
package step

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/guregu/null.v3"
)

// Record captures one observation point of one instrumented operation. The
// instrumentation layer creates a pair of them around each driver or element
// call and hands them to listeners.
//
// A Record is immutable once its builder has finished with it: the With*
// setters exist for the instrumentation layer and for reconstruction from a
// serialized form, and none of them touch the Timing markers. Only
// Timing.Record does.
type Record struct {
	RecordNumber    int64        `json:"record_number"`
	StepNumber      int          `json:"step_number"`
	Timestamp       int64        `json:"timestamp"` // ms since epoch
	SinceLastAction NullDuration `json:"time_since_last_action"`
	ElapsedStep     NullDuration `json:"time_elapsed_step"`
	Phase           Phase        `json:"phase"`
	Cmd             Cmd          `json:"cmd"`
	Param1          null.String  `json:"param1"`
	Param2          null.String  `json:"param2"`
	ReturnValue     null.String  `json:"return_value"`
	Failure         null.String  `json:"failure"`

	// ReturnObject keeps the live return value (an element handle, usually)
	// for in-process consumers. It is never serialized.
	ReturnObject any `json:"-"`

	// Err is the captured operation error behind Failure. Never serialized;
	// Failure carries the message for sinks.
	Err error `json:"-"`
}

// WithParam1 sets the first stringified operation argument.
func (r *Record) WithParam1(v string) *Record {
	r.Param1 = null.StringFrom(v)
	return r
}

// WithParam2 sets the second stringified operation argument.
func (r *Record) WithParam2(v string) *Record {
	r.Param2 = null.StringFrom(v)
	return r
}

// WithReturnValue sets the stringified primitive return value.
func (r *Record) WithReturnValue(v string) *Record {
	r.ReturnValue = null.StringFrom(v)
	return r
}

// WithReturnObject keeps the raw return object for in-process consumers.
func (r *Record) WithReturnObject(v any) *Record {
	r.ReturnObject = v
	return r
}

// WithError captures an operation failure as data.
func (r *Record) WithError(err error) *Record {
	r.Err = err
	if err != nil {
		r.Failure = null.StringFrom(err.Error())
	}
	return r
}

// String renders the record as one log line, joining the populated fields in
// a fixed order and omitting absent ones.
func (r *Record) String() string {
	var b strings.Builder
	b.WriteString("stepno:")
	b.WriteString(strconv.Itoa(r.StepNumber))
	b.WriteString(",type:")
	b.WriteString(r.Phase.String())
	b.WriteString(",timestamp:")
	b.WriteString(strconv.FormatInt(r.Timestamp, 10))
	b.WriteString(" ms,cmd:")
	b.WriteString(r.Cmd.String())
	if r.Param1.Valid {
		b.WriteString(",param1:")
		b.WriteString(r.Param1.String)
	}
	if r.Param2.Valid {
		b.WriteString(",param2:")
		b.WriteString(r.Param2.String)
	}
	if r.ReturnValue.Valid {
		b.WriteString(",returned:")
		b.WriteString(r.ReturnValue.String)
	} else if r.ReturnObject != nil {
		b.WriteString(",returned:")
		b.WriteString(fmt.Sprint(r.ReturnObject))
	}
	if r.SinceLastAction.Valid {
		b.WriteString(",since last step:")
		b.WriteString(FormatNano(r.SinceLastAction.Nanoseconds()))
	}
	if r.ElapsedStep.Valid {
		b.WriteString(",executed in:")
		b.WriteString(FormatNano(r.ElapsedStep.Nanoseconds()))
	}
	// Keyed off Failure, not Err: a record reconstructed from its JSON form
	// has only the message.
	if r.Failure.Valid {
		b.WriteString(",issue:")
		b.WriteString(r.Failure.String)
	}
	return b.String()
}
