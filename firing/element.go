package firing

import (
	"gopkg.in/guregu/null.v3"

	"github.com/stepwatch/stepwatch/driver"
	"github.com/stepwatch/stepwatch/step"
)

// Element wraps a located element so its operations are recorded against the
// session that found it. The element's normalized locator rides in param1 of
// every record, so a reader can tell which element a click or query hit.
type Element struct {
	*core
	wrapped driver.Element
}

// String returns the wrapped element's driver-native representation,
// unrecorded: stringifying a handle is not an instrumented operation.
func (e *Element) String() string {
	return e.wrapped.String()
}

// locator renders the element's normalized locator for record params.
func (e *Element) locator() null.String {
	return step.NormalizeElementLocator(null.StringFrom(e.wrapped.String()))
}

// Click clicks the element.
func (e *Element) Click() error {
	return e.action(step.CmdClick, e.locator(), null.String{}, e.wrapped.Click)
}

// Clear clears a text input.
func (e *Element) Clear() error {
	return e.action(step.CmdClear, e.locator(), null.String{}, e.wrapped.Clear)
}

// FindElement locates the first descendant matching the locator.
func (e *Element) FindElement(by driver.By) (driver.Element, error) {
	return e.gatherElement(step.CmdFindElementByElement, byParam(by), func() (driver.Element, error) {
		return e.wrapped.FindElement(by)
	})
}

// FindElements locates all descendants matching the locator.
func (e *Element) FindElements(by driver.By) ([]driver.Element, error) {
	return e.gatherElements(step.CmdFindElementsByElement, byParam(by), func() ([]driver.Element, error) {
		return e.wrapped.FindElements(by)
	})
}

// Attribute returns the value of the named attribute.
func (e *Element) Attribute(name string) (string, error) {
	n := e.nextStep()
	before := e.timing.Record(step.BeforeGather, n, step.CmdGetAttribute)
	before.Param1, before.Param2 = e.locator(), null.StringFrom(name)
	e.emit(before)

	v, err := e.wrapped.Attribute(name)
	if err != nil {
		e.fail(n, step.CmdGetAttribute, e.locator(), null.StringFrom(name), err)
		return "", err
	}

	after := e.timing.Record(step.AfterGather, n, step.CmdGetAttribute).WithReturnValue(v)
	after.Param1, after.Param2 = e.locator(), null.StringFrom(name)
	e.emit(after)
	return v, nil
}

// CSSValue returns the computed value of the named CSS property.
func (e *Element) CSSValue(name string) (string, error) {
	n := e.nextStep()
	before := e.timing.Record(step.BeforeGather, n, step.CmdGetCSSValue)
	before.Param1, before.Param2 = e.locator(), null.StringFrom(name)
	e.emit(before)

	v, err := e.wrapped.CSSValue(name)
	if err != nil {
		e.fail(n, step.CmdGetCSSValue, e.locator(), null.StringFrom(name), err)
		return "", err
	}

	after := e.timing.Record(step.AfterGather, n, step.CmdGetCSSValue).WithReturnValue(v)
	after.Param1, after.Param2 = e.locator(), null.StringFrom(name)
	e.emit(after)
	return v, nil
}

// TagName returns the element's tag name.
func (e *Element) TagName() (string, error) {
	return e.gather(step.CmdGetTagName, e.locator(), e.wrapped.TagName)
}

// Text returns the element's visible text.
func (e *Element) Text() (string, error) {
	return e.gather(step.CmdGetText, e.locator(), e.wrapped.Text)
}

// IsDisplayed reports whether the element is visible.
func (e *Element) IsDisplayed() (bool, error) {
	return e.gatherBool(step.CmdIsDisplayed, e.locator(), e.wrapped.IsDisplayed)
}

// IsEnabled reports whether the element is enabled.
func (e *Element) IsEnabled() (bool, error) {
	return e.gatherBool(step.CmdIsEnabled, e.locator(), e.wrapped.IsEnabled)
}

// IsSelected reports whether the element is selected.
func (e *Element) IsSelected() (bool, error) {
	return e.gatherBool(step.CmdIsSelected, e.locator(), e.wrapped.IsSelected)
}

// SendKeys types into the element.
func (e *Element) SendKeys(keys string) error {
	return e.action(step.CmdSendKeys, e.locator(), null.StringFrom(keys), func() error {
		return e.wrapped.SendKeys(keys)
	})
}

// Submit submits the form the element belongs to.
func (e *Element) Submit() error {
	return e.action(step.CmdSubmit, e.locator(), null.String{}, e.wrapped.Submit)
}
