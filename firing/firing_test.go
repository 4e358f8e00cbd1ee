package firing

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stepwatch/stepwatch/driver"
	"github.com/stepwatch/stepwatch/step"
)

type fakeElement struct {
	repr string
	text string
	err  error
}

func (e *fakeElement) String() string { return e.repr }
func (e *fakeElement) Click() error   { return e.err }
func (e *fakeElement) Clear() error   { return e.err }
func (e *fakeElement) FindElement(driver.By) (driver.Element, error) {
	return &fakeElement{repr: e.repr}, e.err
}
func (e *fakeElement) FindElements(driver.By) ([]driver.Element, error) {
	return []driver.Element{&fakeElement{repr: e.repr}}, e.err
}
func (e *fakeElement) Attribute(string) (string, error) { return "attr-value", e.err }
func (e *fakeElement) CSSValue(string) (string, error)  { return "css-value", e.err }
func (e *fakeElement) TagName() (string, error)         { return "a", e.err }
func (e *fakeElement) Text() (string, error)            { return e.text, e.err }
func (e *fakeElement) IsDisplayed() (bool, error)       { return true, e.err }
func (e *fakeElement) IsEnabled() (bool, error)         { return true, e.err }
func (e *fakeElement) IsSelected() (bool, error)        { return false, e.err }
func (e *fakeElement) SendKeys(string) error            { return e.err }
func (e *fakeElement) Submit() error                    { return e.err }

type fakeDriver struct {
	element  *fakeElement
	getErr   error
	lastByIn driver.By
	framed   driver.Element
}

func (d *fakeDriver) Get(string) error            { return d.getErr }
func (d *fakeDriver) CurrentURL() (string, error) { return "https://example.com/", nil }
func (d *fakeDriver) Title() (string, error)      { return "Example", nil }
func (d *fakeDriver) FindElement(by driver.By) (driver.Element, error) {
	d.lastByIn = by
	if d.element == nil {
		return nil, errors.New("no such element")
	}
	return d.element, nil
}
func (d *fakeDriver) FindElements(driver.By) ([]driver.Element, error) {
	if d.element == nil {
		return nil, nil
	}
	return []driver.Element{d.element}, nil
}
func (d *fakeDriver) WindowHandle() (string, error)    { return "w-1", nil }
func (d *fakeDriver) WindowHandles() ([]string, error) { return []string{"w-1", "w-2"}, nil }
func (d *fakeDriver) Close() error                     { return nil }
func (d *fakeDriver) Quit() error                      { return nil }
func (d *fakeDriver) Navigate() driver.Navigation      { return &fakeNav{} }
func (d *fakeDriver) SwitchTo() driver.TargetLocator   { return &fakeTarget{d: d} }
func (d *fakeDriver) Window() driver.Window            { return &fakeWindow{} }

type fakeNav struct{}

func (*fakeNav) Back() error     { return nil }
func (*fakeNav) Forward() error  { return nil }
func (*fakeNav) Refresh() error  { return nil }
func (*fakeNav) To(string) error { return nil }

type fakeTarget struct{ d *fakeDriver }

func (*fakeTarget) ActiveElement() (driver.Element, error) {
	return &fakeElement{repr: "[[D: x on Y (id)] -> id: active]"}, nil
}
func (*fakeTarget) Alert() (string, error)   { return "are you sure?", nil }
func (*fakeTarget) DefaultContent() error    { return nil }
func (*fakeTarget) FrameByIndex(int) error   { return nil }
func (*fakeTarget) FrameByName(string) error { return nil }
func (t *fakeTarget) FrameByElement(el driver.Element) error {
	t.d.framed = el
	return nil
}
func (*fakeTarget) ParentFrame() error  { return nil }
func (*fakeTarget) Window(string) error { return nil }

type fakeWindow struct{}

func (*fakeWindow) Fullscreen() error               { return nil }
func (*fakeWindow) Position() (driver.Point, error) { return driver.Point{X: 10, Y: 20}, nil }
func (*fakeWindow) Size() (driver.Size, error)      { return driver.Size{Width: 800, Height: 600}, nil }
func (*fakeWindow) Maximize() error                 { return nil }
func (*fakeWindow) SetPosition(driver.Point) error  { return nil }
func (*fakeWindow) SetSize(driver.Size) error       { return nil }

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func record(t *testing.T) (*Driver, *fakeDriver, *[]*step.Record) {
	t.Helper()
	fake := &fakeDriver{element: &fakeElement{
		repr: "[[RemoteWebDriver: chrome on LINUX (abc123)] -> xpath: //div[@id='a']]",
		text: "hello",
	}}
	var got []*step.Record
	d := Wrap(fake, Options{
		Logger:    quietLogger(),
		Listeners: []Listener{ListenerFunc(func(r *step.Record) { got = append(got, r) })},
	})
	return d, fake, &got
}

func TestWrapEmitsActionPairs(t *testing.T) {
	t.Parallel()
	d, _, got := record(t)

	require.NoError(t, d.Get("https://example.com/"))
	require.Len(t, *got, 2)

	before, after := (*got)[0], (*got)[1]
	assert.Equal(t, step.BeforeAction, before.Phase)
	assert.Equal(t, step.AfterAction, after.Phase)
	assert.Equal(t, before.StepNumber, after.StepNumber)
	assert.Equal(t, step.CmdGet, before.Cmd)
	assert.Equal(t, "https://example.com/", before.Param1.String)
	assert.True(t, after.ElapsedStep.Valid)
	assert.False(t, before.SinceLastAction.Valid, "first step has no predecessor")

	require.NoError(t, d.Navigate().Refresh())
	next := (*got)[2]
	assert.Equal(t, step.BeforeAction, next.Phase)
	assert.True(t, next.SinceLastAction.Valid, "second action measures the gap")
}

func TestWrapRecordNumbersAreMonotonic(t *testing.T) {
	t.Parallel()
	d, _, got := record(t)

	require.NoError(t, d.Get("https://example.com/"))
	_, err := d.Title()
	require.NoError(t, err)
	_, err = d.WindowHandles()
	require.NoError(t, err)

	var prev int64
	for _, r := range *got {
		assert.Equal(t, prev+1, r.RecordNumber)
		prev = r.RecordNumber
	}
}

func TestWrapFindElementNormalizesAndInstruments(t *testing.T) {
	t.Parallel()
	d, fake, got := record(t)

	el, err := d.FindElement(driver.ByXPath("//div[@id='a']"))
	require.NoError(t, err)
	assert.Equal(t, "xpath", fake.lastByIn.Using)

	require.Len(t, *got, 2)
	before, after := (*got)[0], (*got)[1]
	assert.Equal(t, step.BeforeGather, before.Phase)
	assert.Equal(t, `By.xpath("//div[@id='a']")`, before.Param1.String)
	assert.Same(t, fake.element, after.ReturnObject, "live handle kept on the after record")
	assert.False(t, after.ReturnValue.Valid, "only one of value/object is populated")

	// The found element is instrumented too, with its locator in param1.
	require.NoError(t, el.Click())
	click := (*got)[2]
	assert.Equal(t, step.CmdClick, click.Cmd)
	assert.Equal(t, step.BeforeAction, click.Phase)
	assert.Equal(t, `By.xpath("//div[@id='a']")`, click.Param1.String)

	text, err := el.Text()
	require.NoError(t, err)
	assert.Equal(t, "hello", text)
	assert.Equal(t, "hello", (*got)[5].ReturnValue.String)
}

func TestWrapFailureEmitsFailureRecordAndReturnsError(t *testing.T) {
	t.Parallel()
	d, fake, got := record(t)
	fake.getErr = errors.New("net::ERR_NAME_NOT_RESOLVED")

	err := d.Get("https://bad.invalid/")
	require.EqualError(t, err, "net::ERR_NAME_NOT_RESOLVED")

	require.Len(t, *got, 2, "before record plus failure record, no after record")
	failure := (*got)[1]
	assert.Equal(t, step.Failure, failure.Phase)
	assert.Equal(t, step.CmdGet, failure.Cmd)
	assert.Same(t, err, failure.Err)
	assert.Equal(t, "net::ERR_NAME_NOT_RESOLVED", failure.Failure.String)
	assert.Equal(t, (*got)[0].StepNumber, failure.StepNumber)
}

func TestWrapFrameByElementUnwraps(t *testing.T) {
	t.Parallel()
	d, fake, got := record(t)

	el, err := d.FindElement(driver.ByID("payments"))
	require.NoError(t, err)
	require.NoError(t, d.SwitchTo().FrameByElement(el))

	assert.Same(t, fake.element, fake.framed, "underlying driver got its own handle back")
	frameBefore := (*got)[2]
	assert.Equal(t, step.CmdFrameByElement, frameBefore.Cmd)
	assert.Equal(t, "webDriver.switchTo().frame", frameBefore.Cmd.String())
	assert.Equal(t, `By.xpath("//div[@id='a']")`, frameBefore.Param1.String)
}

func TestWrapStepNumbersGrowPerOperation(t *testing.T) {
	t.Parallel()
	d, _, got := record(t)

	require.NoError(t, d.Get("https://example.com/"))
	_, err := d.CurrentURL()
	require.NoError(t, err)
	require.NoError(t, d.Window().Maximize())

	steps := []int{}
	for _, r := range *got {
		steps = append(steps, r.StepNumber)
	}
	assert.Equal(t, []int{1, 1, 2, 2, 3, 3}, steps)
}

func TestTestFailureUsesTestFailureCmd(t *testing.T) {
	t.Parallel()
	d, _, got := record(t)

	d.TestFailure(errors.New("assertion failed: title mismatch"))
	require.Len(t, *got, 1)
	r := (*got)[0]
	assert.Equal(t, step.Failure, r.Phase)
	assert.Equal(t, step.CmdTestFailure, r.Cmd)
	assert.Equal(t, "testFailure", r.Cmd.String())
}

func TestWrapDefaultsTimingAndLogger(t *testing.T) {
	t.Parallel()
	fake := &fakeDriver{element: &fakeElement{repr: "x"}}
	d := Wrap(fake, Options{Logger: quietLogger()})

	start := time.Now().UnixMilli()
	var r *step.Record
	d.AddListener(ListenerFunc(func(rec *step.Record) { r = rec }))
	require.NoError(t, d.Navigate().Back())
	require.NotNil(t, r)
	assert.GreaterOrEqual(t, r.Timestamp, start)
}
