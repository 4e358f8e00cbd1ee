package step

import "errors"

// A Cmd identifies one instrumented driver or element operation. The set is
// closed: every operation the firing driver intercepts has exactly one Cmd.
//
// Cmd keeps two string forms. MarshalText/UnmarshalText use the unique
// identity token (e.g. "frameByIndex"), so structured consumers can tell
// overloads apart after a round trip through JSON. String returns the dotted
// display name a test author would write (e.g. "webDriver.switchTo().frame"),
// which intentionally collapses overloads that differ only in argument type.
type Cmd int

// Commands called directly on the driver object.
const (
	CmdClose Cmd = iota + 1
	CmdFindElementByDriver
	CmdFindElementsByDriver
	CmdGet
	CmdGetCurrentURL
	CmdGetTitle
	CmdGetWindowHandle
	CmdGetWindowHandles
	CmdQuit

	// Commands called on the driver's navigation object.
	CmdBack
	CmdForward
	CmdRefresh
	CmdTo

	// Commands called on the driver's target-locator object.
	CmdActiveElement
	CmdAlert
	CmdDefaultContent
	CmdFrameByIndex
	CmdFrameByName
	CmdFrameByElement
	CmdParentFrame
	CmdWindow

	// Commands called on the driver's window object.
	CmdFullscreen
	CmdGetPosition
	CmdGetSize
	CmdMaximize
	CmdSetPosition
	CmdSetSize

	// Commands called on an element object.
	CmdClick
	CmdClear
	CmdFindElementByElement
	CmdFindElementsByElement
	CmdGetAttribute
	CmdGetCSSValue
	CmdGetTagName
	CmdGetText
	CmdIsDisplayed
	CmdIsEnabled
	CmdIsSelected
	CmdSendKeys
	CmdSubmit

	// The current command has failed.
	CmdTestFailure
)

// ErrInvalidCmd indicates a serialized command token is invalid.
var ErrInvalidCmd = errors.New("invalid command token")

// cmdTokens holds the unique identity token per command, used for
// serialization. Indexed by Cmd.
var cmdTokens = map[Cmd]string{
	CmdClose:                 "close",
	CmdFindElementByDriver:   "findElementByWebDriver",
	CmdFindElementsByDriver:  "findElementsByWebDriver",
	CmdGet:                   "get",
	CmdGetCurrentURL:         "getCurrentUrl",
	CmdGetTitle:              "getTitle",
	CmdGetWindowHandle:       "getWindowHandle",
	CmdGetWindowHandles:      "getWindowHandles",
	CmdQuit:                  "quit",
	CmdBack:                  "back",
	CmdForward:               "forward",
	CmdRefresh:               "refresh",
	CmdTo:                    "to",
	CmdActiveElement:         "activeElement",
	CmdAlert:                 "alert",
	CmdDefaultContent:        "defaultContent",
	CmdFrameByIndex:          "frameByIndex",
	CmdFrameByName:           "frameByName",
	CmdFrameByElement:        "frameByElement",
	CmdParentFrame:           "parentFrame",
	CmdWindow:                "window",
	CmdFullscreen:            "fullscreen",
	CmdGetPosition:           "getPosition",
	CmdGetSize:               "getSize",
	CmdMaximize:              "maximize",
	CmdSetPosition:           "setPosition",
	CmdSetSize:               "setSize",
	CmdClick:                 "click",
	CmdClear:                 "clear",
	CmdFindElementByElement:  "findElementByElement",
	CmdFindElementsByElement: "findElementsByElement",
	CmdGetAttribute:          "getAttribute",
	CmdGetCSSValue:           "getCssValue",
	CmdGetTagName:            "getTagName",
	CmdGetText:               "getText",
	CmdIsDisplayed:           "isDisplayed",
	CmdIsEnabled:             "isEnabled",
	CmdIsSelected:            "isSelected",
	CmdSendKeys:              "sendKeys",
	CmdSubmit:                "submit",
	CmdTestFailure:           "testFailure",
}

// cmdDisplayNames maps each command to its dotted display name. The mapping
// is deliberately not unique: the three frame overloads all display as
// "webDriver.switchTo().frame".
var cmdDisplayNames = map[Cmd]string{
	CmdClose:                 "webDriver.close",
	CmdFindElementByDriver:   "webDriver.findElement",
	CmdFindElementsByDriver:  "webDriver.findElements",
	CmdGet:                   "webDriver.get",
	CmdGetCurrentURL:         "webDriver.getCurrentUrl",
	CmdGetTitle:              "webDriver.getTitle",
	CmdGetWindowHandle:       "webDriver.getWindowHandle",
	CmdGetWindowHandles:      "webDriver.getWindowHandles",
	CmdQuit:                  "webDriver.quit",
	CmdBack:                  "webDriver.navigate().back",
	CmdForward:               "webDriver.navigate().forward",
	CmdRefresh:               "webDriver.navigate().refresh",
	CmdTo:                    "webDriver.navigate().to",
	CmdActiveElement:         "webDriver.switchTo().activeElement",
	CmdAlert:                 "webDriver.switchTo().alert",
	CmdDefaultContent:        "webDriver.switchTo().defaultContent",
	CmdFrameByIndex:          "webDriver.switchTo().frame",
	CmdFrameByName:           "webDriver.switchTo().frame",
	CmdFrameByElement:        "webDriver.switchTo().frame",
	CmdParentFrame:           "webDriver.switchTo().parentFrame",
	CmdWindow:                "webDriver.switchTo().window",
	CmdFullscreen:            "webDriver.manage().window().fullscreen",
	CmdGetPosition:           "webDriver.manage().window().getPosition",
	CmdGetSize:               "webDriver.manage().window().getSize",
	CmdMaximize:              "webDriver.manage().window().maximize",
	CmdSetPosition:           "webDriver.manage().window().setPosition",
	CmdSetSize:               "webDriver.manage().window().setSize",
	CmdClick:                 "webElement.click",
	CmdClear:                 "webElement.clear",
	CmdFindElementByElement:  "webElement.findElement",
	CmdFindElementsByElement: "webElement.findElements",
	CmdGetAttribute:          "webElement.getAttribute",
	CmdGetCSSValue:           "webElement.getCssValue",
	CmdGetTagName:            "webElement.getTagName",
	CmdGetText:               "webElement.getText",
	CmdIsDisplayed:           "webElement.isDisplayed",
	CmdIsEnabled:             "webElement.isEnabled",
	CmdIsSelected:            "webElement.isSelected",
	CmdSendKeys:              "webElement.sendKeys",
	CmdSubmit:                "webElement.submit",
	CmdTestFailure:           "testFailure",
}

var cmdFromToken = func() map[string]Cmd {
	m := make(map[string]Cmd, len(cmdTokens))
	for c, tok := range cmdTokens {
		m[tok] = c
	}
	return m
}()

// String returns the command's display name, or "unknown" for any value
// outside the closed set. It never fails: display names are for logs, and a
// log line with an unknown command is still a log line.
func (c Cmd) String() string {
	if name, ok := cmdDisplayNames[c]; ok {
		return name
	}
	return "unknown"
}

// Token returns the command's unique identity token, or "unknown" for any
// value outside the closed set.
func (c Cmd) Token() string {
	if tok, ok := cmdTokens[c]; ok {
		return tok
	}
	return "unknown"
}

// MarshalText serializes a Cmd as its identity token.
func (c Cmd) MarshalText() ([]byte, error) {
	return []byte(c.Token()), nil
}

// MarshalJSON serializes a Cmd as its identity token.
func (c Cmd) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.Token() + `"`), nil
}

// UnmarshalText deserializes a Cmd from its identity token.
func (c *Cmd) UnmarshalText(data []byte) error {
	cmd, ok := cmdFromToken[string(data)]
	if !ok {
		return ErrInvalidCmd
	}
	*c = cmd
	return nil
}
