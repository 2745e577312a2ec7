package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// maxAcceptLanguageLength bounds the header accepted by Negotiate.
const maxAcceptLanguageLength = 4096

// Negotiate picks the supported language that best matches an
// Accept-Language value, or the default language when nothing matches.
func (t *Translator) Negotiate(acceptLanguage string) string {
	return NegotiateLanguage(acceptLanguage, t.SupportedLanguages(), t.defaultLang)
}

// NegotiateLanguage matches an Accept-Language value against supported
// language codes using the BCP 47 matcher of golang.org/x/text.
func NegotiateLanguage(acceptLanguage string, supported []string, defaultLang string) string {
	if acceptLanguage == "" || len(supported) == 0 {
		return defaultLang
	}
	if len(acceptLanguage) > maxAcceptLanguageLength {
		acceptLanguage = acceptLanguage[:maxAcceptLanguageLength]
	}

	desired, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(desired) == 0 {
		return defaultLang
	}

	tags := make([]language.Tag, 0, len(supported))
	codes := make([]string, 0, len(supported))
	for _, code := range supported {
		tag, err := language.Parse(code)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
		codes = append(codes, strings.ToLower(code))
	}
	if len(tags) == 0 {
		return defaultLang
	}

	_, index, confidence := language.NewMatcher(tags).Match(desired...)
	if confidence == language.No {
		return defaultLang
	}
	return codes[index]
}
