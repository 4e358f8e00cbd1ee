package step

import (
	"regexp"
	"strings"

	"gopkg.in/guregu/null.v3"
)

// Drivers print element handles like
//
//	[[RemoteWebDriver: firefox on WINDOWS (a66f78e9668e4aa3b066239459f969fe)] -> xpath: //*[@id='Country']/tr[2]/th/a]
//
// and locator objects like
//
//	By.xpath: //*[@id='thePage:searchblock']/img
//
// The functions below reverse-engineer the readable constructor expression,
// e.g. By.xpath("//*[@id='Country']/tr[2]/th/a"), out of those. They are a
// best-effort cosmetic transform, never a validator: anything that does not
// match the expected shape is echoed back unchanged, so the step log never
// loses information when the driver's format drifts.
var (
	elementOuterRe   = regexp.MustCompile(`^(\[\[.+\] -> )(.+)\]$`)
	locatorGenericRe = regexp.MustCompile(`^(\S+): (.+)$`)
	locatorLinkRe    = regexp.MustCompile(`^(link text): (.+)$`)
	byRe             = regexp.MustCompile(`^By\.(\S+): (.+)$`)
)

// LocatorFromElementText extracts the locator from a driver's element-handle
// representation and renders it as a By expression. Input that does not look
// like an element handle is returned as-is.
func LocatorFromElementText(text string) string {
	outer := elementOuterRe.FindStringSubmatch(text)
	if outer == nil {
		return text
	}

	// e.g. "xpath: //*[@id='Country']/tr[2]/th/a"
	locator := outer[2]
	inner := locatorGenericRe.FindStringSubmatch(locator)
	isLinkText := false
	if inner == nil {
		// "link text" has a space in the strategy name, so the generic
		// pattern misses it.
		inner = locatorLinkRe.FindStringSubmatch(locator)
		if inner == nil {
			return locator
		}
		isLinkText = true
	}

	strategy := inner[1]
	if isLinkText {
		strategy = "linkText"
	}
	return composeBy(strategy, inner[2])
}

// LocatorFromByText re-renders a locator object's representation as the By
// expression that produced it. Input that does not look like a locator is
// returned as-is.
func LocatorFromByText(text string) string {
	m := byRe.FindStringSubmatch(text)
	if m == nil {
		return text
	}
	return composeBy(m[1], m[2])
}

// NormalizeElementLocator is LocatorFromElementText lifted over nullable
// strings: absent in, absent out.
func NormalizeElementLocator(raw null.String) null.String {
	if !raw.Valid {
		return null.String{}
	}
	return null.StringFrom(LocatorFromElementText(raw.String))
}

// NormalizeByLocator is LocatorFromByText lifted over nullable strings:
// absent in, absent out.
func NormalizeByLocator(raw null.String) null.String {
	if !raw.Valid {
		return null.String{}
	}
	return null.StringFrom(LocatorFromByText(raw.String))
}

func composeBy(strategy, value string) string {
	var sb strings.Builder
	sb.WriteString("By.")
	sb.WriteString(strategy)
	sb.WriteString(`("`)
	sb.WriteString(value)
	sb.WriteString(`")`)
	return sb.String()
}
