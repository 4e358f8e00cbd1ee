package firing

import (
	"strconv"

	"github.com/sirupsen/logrus"
	"gopkg.in/guregu/null.v3"

	"github.com/stepwatch/stepwatch/driver"
	"github.com/stepwatch/stepwatch/step"
)

// Driver wraps a driver.Driver and records every operation.
type Driver struct {
	*core
	wrapped driver.Driver
}

// Wrap returns an instrumented view of d. All records constructed for the
// session, including those for elements found through it, go to
// opts.Listeners in construction order.
func Wrap(d driver.Driver, opts Options) *Driver {
	timing := opts.Timing
	if timing == nil {
		timing = step.NewTiming()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Driver{
		core: &core{
			timing:    timing,
			logger:    logger.WithField("component", "firing"),
			listeners: opts.Listeners,
		},
		wrapped: d,
	}
}

// AddListener registers another listener. Not safe to call while operations
// are in flight; register before driving the session.
func (d *Driver) AddListener(l Listener) {
	d.listeners = append(d.listeners, l)
}

// TestFailure records a test-level failure that did not originate in a driver
// call, e.g. a failed assertion in the harness.
func (d *Driver) TestFailure(err error) {
	d.fail(d.stepNo, step.CmdTestFailure, null.String{}, null.String{}, err)
}

// Get navigates to the given URL.
func (d *Driver) Get(url string) error {
	return d.action(step.CmdGet, null.StringFrom(url), null.String{}, func() error {
		return d.wrapped.Get(url)
	})
}

// CurrentURL returns the URL of the current page.
func (d *Driver) CurrentURL() (string, error) {
	return d.gather(step.CmdGetCurrentURL, null.String{}, d.wrapped.CurrentURL)
}

// Title returns the current page title.
func (d *Driver) Title() (string, error) {
	return d.gather(step.CmdGetTitle, null.String{}, d.wrapped.Title)
}

// FindElement locates the first element matching the locator. The returned
// element is itself instrumented.
func (d *Driver) FindElement(by driver.By) (driver.Element, error) {
	return d.gatherElement(step.CmdFindElementByDriver, byParam(by), func() (driver.Element, error) {
		return d.wrapped.FindElement(by)
	})
}

// FindElements locates all elements matching the locator. The returned
// elements are themselves instrumented.
func (d *Driver) FindElements(by driver.By) ([]driver.Element, error) {
	return d.gatherElements(step.CmdFindElementsByDriver, byParam(by), func() ([]driver.Element, error) {
		return d.wrapped.FindElements(by)
	})
}

// WindowHandle returns the handle of the current window.
func (d *Driver) WindowHandle() (string, error) {
	return d.gather(step.CmdGetWindowHandle, null.String{}, d.wrapped.WindowHandle)
}

// WindowHandles returns the handles of all open windows.
func (d *Driver) WindowHandles() ([]string, error) {
	var handles []string
	_, err := d.gather(step.CmdGetWindowHandles, null.String{}, func() (string, error) {
		var err error
		handles, err = d.wrapped.WindowHandles()
		return strconv.Itoa(len(handles)) + " window handles", err
	})
	return handles, err
}

// Close closes the current window.
func (d *Driver) Close() error {
	return d.action(step.CmdClose, null.String{}, null.String{}, d.wrapped.Close)
}

// Quit ends the session.
func (d *Driver) Quit() error {
	return d.action(step.CmdQuit, null.String{}, null.String{}, d.wrapped.Quit)
}

// Navigate returns the instrumented navigation surface.
func (d *Driver) Navigate() driver.Navigation {
	return &navigation{core: d.core, wrapped: d.wrapped.Navigate()}
}

// SwitchTo returns the instrumented target-locator surface.
func (d *Driver) SwitchTo() driver.TargetLocator {
	return &targetLocator{core: d.core, wrapped: d.wrapped.SwitchTo()}
}

// Window returns the instrumented window surface.
func (d *Driver) Window() driver.Window {
	return &window{core: d.core, wrapped: d.wrapped.Window()}
}

type navigation struct {
	*core
	wrapped driver.Navigation
}

func (n *navigation) Back() error {
	return n.action(step.CmdBack, null.String{}, null.String{}, n.wrapped.Back)
}

func (n *navigation) Forward() error {
	return n.action(step.CmdForward, null.String{}, null.String{}, n.wrapped.Forward)
}

func (n *navigation) Refresh() error {
	return n.action(step.CmdRefresh, null.String{}, null.String{}, n.wrapped.Refresh)
}

func (n *navigation) To(url string) error {
	return n.action(step.CmdTo, null.StringFrom(url), null.String{}, func() error {
		return n.wrapped.To(url)
	})
}

type targetLocator struct {
	*core
	wrapped driver.TargetLocator
}

func (t *targetLocator) ActiveElement() (driver.Element, error) {
	return t.gatherElement(step.CmdActiveElement, null.String{}, t.wrapped.ActiveElement)
}

func (t *targetLocator) Alert() (string, error) {
	return t.gather(step.CmdAlert, null.String{}, t.wrapped.Alert)
}

func (t *targetLocator) DefaultContent() error {
	return t.action(step.CmdDefaultContent, null.String{}, null.String{}, t.wrapped.DefaultContent)
}

func (t *targetLocator) FrameByIndex(index int) error {
	return t.action(step.CmdFrameByIndex, null.StringFrom(strconv.Itoa(index)), null.String{}, func() error {
		return t.wrapped.FrameByIndex(index)
	})
}

func (t *targetLocator) FrameByName(name string) error {
	return t.action(step.CmdFrameByName, null.StringFrom(name), null.String{}, func() error {
		return t.wrapped.FrameByName(name)
	})
}

func (t *targetLocator) FrameByElement(el driver.Element) error {
	param := step.NormalizeElementLocator(null.StringFrom(el.String()))
	return t.action(step.CmdFrameByElement, param, null.String{}, func() error {
		return t.wrapped.FrameByElement(unwrap(el))
	})
}

func (t *targetLocator) ParentFrame() error {
	return t.action(step.CmdParentFrame, null.String{}, null.String{}, t.wrapped.ParentFrame)
}

func (t *targetLocator) Window(handle string) error {
	return t.action(step.CmdWindow, null.StringFrom(handle), null.String{}, func() error {
		return t.wrapped.Window(handle)
	})
}

type window struct {
	*core
	wrapped driver.Window
}

func (w *window) Fullscreen() error {
	return w.action(step.CmdFullscreen, null.String{}, null.String{}, w.wrapped.Fullscreen)
}

func (w *window) Position() (driver.Point, error) {
	var p driver.Point
	_, err := w.gather(step.CmdGetPosition, null.String{}, func() (string, error) {
		var err error
		p, err = w.wrapped.Position()
		return "(" + strconv.Itoa(p.X) + "," + strconv.Itoa(p.Y) + ")", err
	})
	return p, err
}

func (w *window) Size() (driver.Size, error) {
	var s driver.Size
	_, err := w.gather(step.CmdGetSize, null.String{}, func() (string, error) {
		var err error
		s, err = w.wrapped.Size()
		return strconv.Itoa(s.Width) + "x" + strconv.Itoa(s.Height), err
	})
	return s, err
}

func (w *window) Maximize() error {
	return w.action(step.CmdMaximize, null.String{}, null.String{}, w.wrapped.Maximize)
}

func (w *window) SetPosition(p driver.Point) error {
	param := null.StringFrom("(" + strconv.Itoa(p.X) + "," + strconv.Itoa(p.Y) + ")")
	return w.action(step.CmdSetPosition, param, null.String{}, func() error {
		return w.wrapped.SetPosition(p)
	})
}

func (w *window) SetSize(s driver.Size) error {
	param := null.StringFrom(strconv.Itoa(s.Width) + "x" + strconv.Itoa(s.Height))
	return w.action(step.CmdSetSize, param, null.String{}, func() error {
		return w.wrapped.SetSize(s)
	})
}
