// Package driver defines the abstract browser-automation surface the
// instrumentation layer wraps. It carries no implementation: a concrete
// driver (a WebDriver remote, a CDP session, a test fake) plugs in behind
// these interfaces.
package driver

import "fmt"

// By is a locator: a strategy plus a value identifying elements on a page.
type By struct {
	Using string
	Value string
}

// Locator strategy constructors.
func ByID(v string) By              { return By{"id", v} }
func ByXPath(v string) By           { return By{"xpath", v} }
func ByCSSSelector(v string) By     { return By{"cssSelector", v} }
func ByName(v string) By            { return By{"name", v} }
func ByLinkText(v string) By        { return By{"linkText", v} }
func ByPartialLinkText(v string) By { return By{"partialLinkText", v} }
func ByTagName(v string) By         { return By{"tagName", v} }
func ByClassName(v string) By       { return By{"className", v} }

// String renders the locator the way drivers print it, "By.<using>: <value>".
// step.LocatorFromByText reverses this.
func (b By) String() string {
	return fmt.Sprintf("By.%s: %s", b.Using, b.Value)
}

// Point is a window position in pixels.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Size is a window size in pixels.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Driver is the top-level automation session surface.
type Driver interface {
	// Get navigates to the given URL.
	Get(url string) error
	// CurrentURL returns the URL of the current page.
	CurrentURL() (string, error)
	// Title returns the current page title.
	Title() (string, error)
	// FindElement locates the first element matching the locator.
	FindElement(by By) (Element, error)
	// FindElements locates all elements matching the locator.
	FindElements(by By) ([]Element, error)
	// WindowHandle returns the handle of the current window.
	WindowHandle() (string, error)
	// WindowHandles returns the handles of all open windows.
	WindowHandles() ([]string, error)
	// Close closes the current window.
	Close() error
	// Quit ends the session and closes every window.
	Quit() error

	Navigate() Navigation
	SwitchTo() TargetLocator
	Window() Window
}

// Navigation is the browser-history surface of a session.
type Navigation interface {
	Back() error
	Forward() error
	Refresh() error
	To(url string) error
}

// TargetLocator switches the session's focus between frames, windows and
// other targets.
type TargetLocator interface {
	ActiveElement() (Element, error)
	Alert() (string, error)
	DefaultContent() error
	FrameByIndex(index int) error
	FrameByName(name string) error
	FrameByElement(el Element) error
	ParentFrame() error
	Window(handle string) error
}

// Window manages the geometry of the current window.
type Window interface {
	Fullscreen() error
	Position() (Point, error)
	Size() (Size, error)
	Maximize() error
	SetPosition(p Point) error
	SetSize(s Size) error
}

// Element is an opaque handle to a located page element. Implementations
// should make String return the driver-native representation (e.g.
// "[[RemoteWebDriver: ...] -> xpath: ...]") so the locator normalizer can
// recover the By expression from it.
type Element interface {
	fmt.Stringer

	Click() error
	Clear() error
	FindElement(by By) (Element, error)
	FindElements(by By) ([]Element, error)
	Attribute(name string) (string, error)
	CSSValue(name string) (string, error)
	TagName() (string, error)
	Text() (string, error)
	IsDisplayed() (bool, error)
	IsEnabled() (bool, error)
	IsSelected() (bool, error)
	SendKeys(keys string) error
	Submit() error
}
