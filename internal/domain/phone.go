package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// PhoneFormat validates phone numbers of one market.
type PhoneFormat struct {
	Locale  string
	Example string
	pattern *regexp.Regexp
}

func (f PhoneFormat) Valid(phone string) bool {
	return f.pattern.MatchString(phone)
}

var phoneFormats = map[string]PhoneFormat{
	"IN": {Locale: "IN", Example: "+919876543210", pattern: regexp.MustCompile(`^\+91[6-9]\d{9}$`)},
	"AE": {Locale: "AE", Example: "+971501234567", pattern: regexp.MustCompile(`^\+9715\d{8}$`)},
}

// PhoneFormatFor returns the format registered for locale, e.g. "IN".
func PhoneFormatFor(locale string) (PhoneFormat, error) {
	f, ok := phoneFormats[strings.ToUpper(locale)]
	if !ok {
		return PhoneFormat{}, fmt.Errorf("%w: unknown phone locale %q", ErrConfiguration, locale)
	}
	return f, nil
}

// NewPhoneFormat builds a format from a regular expression for markets not registered above.
func NewPhoneFormat(locale, pattern, example string) (PhoneFormat, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return PhoneFormat{}, fmt.Errorf("%w: phone pattern for %s: %v", ErrConfiguration, locale, err)
	}
	return PhoneFormat{Locale: locale, Example: example, pattern: re}, nil
}

var personNamePattern = regexp.MustCompile(`^[\p{L}\s]+$`)

// ValidPersonName reports whether name consists of letters and whitespace only.
func ValidPersonName(name string) bool {
	return personNamePattern.MatchString(name)
}
