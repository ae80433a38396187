// Package translate formats user facing messages in the host language.
package translate

import (
	"sync"

	"github.com/jeandeaual/go-locale"
	"github.com/sirupsen/logrus"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultLanguage is used when the host reports no usable locale.
var DefaultLanguage = language.AmericanEnglish

var (
	mutex   sync.Mutex
	printer *message.Printer
)

func init() {
	printer = message.NewPrinter(Match(Languages()...))
}

// Languages returns the host locales in order of preference. Locales that
// do not parse are skipped.
func Languages() (tags []language.Tag) {
	locales, err := locale.GetLocales()
	if err != nil {
		logrus.WithError(err).Debug("reti: locale")
	}

	for _, name := range locales {
		tag, err := language.Parse(name)
		if err != nil {
			logrus.WithField("locale", name).Debug("reti: locale skipped")
			continue
		}
		tags = append(tags, tag)
	}

	return
}

// Match picks the best supported language for the preferred tags.
func Match(tags ...language.Tag) language.Tag {
	if len(tags) == 0 {
		return DefaultLanguage
	}

	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.String())
	}

	return message.MatchLanguage(names...)
}

// SetLanguage selects the language of messages formatted after the call.
func SetLanguage(tag language.Tag) {
	mutex.Lock()
	defer mutex.Unlock()

	printer = message.NewPrinter(tag)
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	mutex.Lock()
	p := printer
	mutex.Unlock()

	return p.Sprintf(key, args...)
}
