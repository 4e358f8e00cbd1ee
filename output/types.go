// Package output contains the interface step-record sinks have to implement,
// as well as some helpers to make their implementation easier.
package output

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/stepwatch/stepwatch/firing"
	"github.com/stepwatch/stepwatch/step"
)

// Params contains all possible constructor parameters an output may need.
type Params struct {
	// ConfigArgument is the output-specific argument, e.g. a file name.
	ConfigArgument string

	Logger      logrus.FieldLogger
	Environment map[string]string
	StdOut      io.Writer
}

// An Output abstracts the process of funneling step records to an external
// destination, such as a file or the console.
//
// Records arrive through AddRecords, which is never called concurrently and
// must not block; buffer them (see RecordBuffer) and flush asynchronously.
type Output interface {
	// Description returns a human-readable description of the output.
	Description() string

	// Start is called before the output receives any records; use it to open
	// files and spawn the flushing goroutine.
	Start() error

	// AddRecords receives the latest step records from the session.
	AddRecords(records []*step.Record)

	// Stop flushes all remaining records and releases resources.
	Stop() error
}

// Listener bridges a started Output into the firing layer, forwarding each
// record as a single-element batch.
func Listener(o Output) firing.Listener {
	return firing.ListenerFunc(func(r *step.Record) {
		o.AddRecords([]*step.Record{r})
	})
}
