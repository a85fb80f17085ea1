// Package translate formats user visible messages for the host locale.
package translate

import (
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/message"
)

var printer *message.Printer

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("duet: locale: %v", err)
	}

	printer = NewPrinter(locales...)
}

// NewPrinter returns a printer for the best match of the requested locales,
// falling back to en-US.
func NewPrinter(locales ...string) *message.Printer {
	if len(locales) == 0 {
		locales = []string{"en-US"}
	}

	return message.NewPrinter(message.MatchLanguage(locales...))
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}
