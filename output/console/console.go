// Package console implements an output printing one rendered line per step
// record, colored by phase when the destination is a terminal.
package console

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"

	"github.com/stepwatch/stepwatch/output"
	"github.com/stepwatch/stepwatch/step"
)

var (
	actionColor  = color.New(color.FgCyan)
	gatherColor  = color.New(color.Faint)
	failureColor = color.New(color.FgRed)
)

// Output writes each record's textual rendering as one line.
type Output struct {
	logger logrus.FieldLogger
	writer io.Writer
	colors bool
}

// New returns a new console output writing to params.StdOut, or os.Stdout
// when it is nil. Colors are enabled only for terminals.
func New(params output.Params) *Output {
	w := params.StdOut
	colors := false
	if w == nil {
		w = os.Stdout
		colors = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}
	return &Output{
		logger: params.Logger.WithField("output", "console"),
		writer: w,
		colors: colors,
	}
}

// Description returns a human-readable description of the output.
func (o *Output) Description() string {
	return "console"
}

// Start implements output.Output; the console needs no setup.
func (o *Output) Start() error {
	return nil
}

// AddRecords writes the records immediately: console consumers want to see
// steps as they happen, so there is no buffering here.
func (o *Output) AddRecords(records []*step.Record) {
	for _, r := range records {
		line := r.String()
		if o.colors {
			line = o.colorFor(r.Phase).Sprint(line)
		}
		if _, err := fmt.Fprintln(o.writer, line); err != nil {
			o.logger.WithError(err).Error("Couldn't write step record")
		}
	}
}

// Stop implements output.Output; the console needs no teardown.
func (o *Output) Stop() error {
	return nil
}

func (o *Output) colorFor(p step.Phase) *color.Color {
	switch p {
	case step.BeforeAction, step.AfterAction:
		return actionColor
	case step.Failure:
		return failureColor
	default:
		return gatherColor
	}
}
