// Package firing wraps a driver.Driver so that every operation on it, and on
// anything reached through it (navigation, frame switching, window handling,
// located elements), emits a before/after pair of step records to the
// registered listeners. Failures emit a Failure record and still return the
// underlying error to the caller.
package firing

import (
	"strconv"

	"github.com/sirupsen/logrus"
	"gopkg.in/guregu/null.v3"

	"github.com/stepwatch/stepwatch/driver"
	"github.com/stepwatch/stepwatch/step"
)

// A Listener receives every record the wrapper constructs, synchronously and
// in construction order. Listeners must not block for long; anything slow
// belongs behind a buffering output.
type Listener interface {
	OnRecord(r *step.Record)
}

// ListenerFunc adapts a plain function to the Listener interface.
type ListenerFunc func(r *step.Record)

// OnRecord calls f(r).
func (f ListenerFunc) OnRecord(r *step.Record) { f(r) }

// Options configures a wrapped driver.
type Options struct {
	// Timing is the session's timing context. A fresh one is created when nil.
	Timing *step.Timing
	// Logger receives a debug line per emitted record. Defaults to the
	// standard logrus logger.
	Logger logrus.FieldLogger
	// Listeners receive every constructed record.
	Listeners []Listener
}

// core is the state all wrappers spawned from one session share: one timing
// context, one step counter, one listener list. It is driven by a single
// goroutine, like the timing context it owns.
type core struct {
	timing    *step.Timing
	logger    logrus.FieldLogger
	listeners []Listener
	stepNo    int
}

func (c *core) nextStep() int {
	c.stepNo++
	return c.stepNo
}

func (c *core) emit(r *step.Record) {
	c.logger.WithFields(logrus.Fields{
		"record": r.RecordNumber,
		"step":   r.StepNumber,
		"phase":  r.Phase.String(),
		"cmd":    r.Cmd.Token(),
	}).Debug("step record")
	for _, l := range c.listeners {
		l.OnRecord(r)
	}
}

func (c *core) fail(stepNo int, cmd step.Cmd, p1, p2 null.String, err error) {
	r := c.timing.Record(step.Failure, stepNo, cmd).WithError(err)
	r.Param1, r.Param2 = p1, p2
	c.emit(r)
}

// action surrounds a state-changing operation with BeforeAction/AfterAction
// records sharing one step number.
func (c *core) action(cmd step.Cmd, p1, p2 null.String, op func() error) error {
	n := c.nextStep()
	before := c.timing.Record(step.BeforeAction, n, cmd)
	before.Param1, before.Param2 = p1, p2
	c.emit(before)

	if err := op(); err != nil {
		c.fail(n, cmd, p1, p2, err)
		return err
	}

	after := c.timing.Record(step.AfterAction, n, cmd)
	after.Param1, after.Param2 = p1, p2
	c.emit(after)
	return nil
}

// gather surrounds a passive string query with BeforeGather/AfterGather
// records; the after record carries the stringified return value.
func (c *core) gather(cmd step.Cmd, p1 null.String, op func() (string, error)) (string, error) {
	n := c.nextStep()
	before := c.timing.Record(step.BeforeGather, n, cmd)
	before.Param1 = p1
	c.emit(before)

	v, err := op()
	if err != nil {
		c.fail(n, cmd, p1, null.String{}, err)
		return "", err
	}

	after := c.timing.Record(step.AfterGather, n, cmd).WithReturnValue(v)
	after.Param1 = p1
	c.emit(after)
	return v, nil
}

func (c *core) gatherBool(cmd step.Cmd, p1 null.String, op func() (bool, error)) (bool, error) {
	var v bool
	_, err := c.gather(cmd, p1, func() (string, error) {
		var err error
		v, err = op()
		return strconv.FormatBool(v), err
	})
	return v, err
}

// gatherElement surrounds an element lookup. The after record keeps the live
// handle as its return object; the lookup locator rides in param1.
func (c *core) gatherElement(cmd step.Cmd, p1 null.String, op func() (driver.Element, error)) (driver.Element, error) {
	n := c.nextStep()
	before := c.timing.Record(step.BeforeGather, n, cmd)
	before.Param1 = p1
	c.emit(before)

	el, err := op()
	if err != nil {
		c.fail(n, cmd, p1, null.String{}, err)
		return nil, err
	}

	after := c.timing.Record(step.AfterGather, n, cmd).WithReturnObject(el)
	after.Param1 = p1
	c.emit(after)
	return &Element{core: c, wrapped: el}, nil
}

func (c *core) gatherElements(cmd step.Cmd, p1 null.String, op func() ([]driver.Element, error)) ([]driver.Element, error) {
	n := c.nextStep()
	before := c.timing.Record(step.BeforeGather, n, cmd)
	before.Param1 = p1
	c.emit(before)

	els, err := op()
	if err != nil {
		c.fail(n, cmd, p1, null.String{}, err)
		return nil, err
	}

	after := c.timing.Record(step.AfterGather, n, cmd).
		WithReturnObject(els).
		WithParam2(strconv.Itoa(len(els)) + " elements found")
	after.Param1 = p1
	c.emit(after)

	wrapped := make([]driver.Element, len(els))
	for i, el := range els {
		wrapped[i] = &Element{core: c, wrapped: el}
	}
	return wrapped, nil
}

// byParam renders a locator argument the way a test author wrote it.
func byParam(by driver.By) null.String {
	return null.StringFrom(step.LocatorFromByText(by.String()))
}

// unwrap peels our own wrapper off an element before handing it back to the
// underlying driver, which only knows its own handles.
func unwrap(el driver.Element) driver.Element {
	if fe, ok := el.(*Element); ok {
		return fe.wrapped
	}
	return el
}
