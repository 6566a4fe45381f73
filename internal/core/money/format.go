// Package money renders whole-unit prices for display.
package money

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter renders amounts with locale digit grouping and a currency
// suffix. The zero value prints plain digits with no suffix.
type Formatter struct {
	printer *message.Printer
	suffix  string
}

// NewFormatter builds a Formatter for a BCP 47 locale such as "fr-SN".
// An empty or unparsable locale disables grouping.
func NewFormatter(locale, suffix string) Formatter {
	f := Formatter{suffix: suffix}
	if locale == "" {
		return f
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return f
	}
	f.printer = message.NewPrinter(tag)
	return f
}

// Format renders amount, e.g. "13 000 F" for fr-SN with suffix "F".
func (f Formatter) Format(amount int64) string {
	var s string
	if f.printer != nil {
		s = f.printer.Sprintf("%d", amount)
	} else {
		s = strconv.FormatInt(amount, 10)
	}
	if f.suffix != "" {
		s += " " + f.suffix
	}
	return s
}
