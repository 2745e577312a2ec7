package i18n

import (
	"errors"
	"fmt"
)

// ErrLanguageNotSupported indicates that the requested language is not available.
type ErrLanguageNotSupported struct {
	Lang string
}

func (e *ErrLanguageNotSupported) Error() string {
	return fmt.Sprintf("language not supported: %s", e.Lang)
}

var (
	ErrNilAdapter          = errors.New("translation adapter is nil")
	ErrEmptyLanguageCode   = errors.New("empty language code in translations")
	ErrFailedToMarshalJSON = errors.New("failed to marshal translations to JSON")

	ErrParsingCancelled  = errors.New("translation parsing cancelled")
	ErrFailedToParseJSON = errors.New("failed to parse JSON content")
	ErrFailedToParseYAML = errors.New("failed to parse YAML content")
	ErrUnsupportedFormat = errors.New("unsupported translation file format")

	ErrLoadingCancelled  = errors.New("loading translations cancelled")
	ErrFailedToReadFile  = errors.New("failed to read translation file")
	ErrFailedToParseFile = errors.New("failed to parse translation file")
	ErrEmptyFile         = errors.New("translation file is empty")
	ErrFailedToReadDir   = errors.New("failed to read translation directory")
	ErrNoTranslations    = errors.New("no translation files found")

	ErrFailedToQueryTranslations = errors.New("failed to query translations")
	ErrCacheMiss                 = errors.New("translation snapshot not cached")
	ErrFailedToCacheSnapshot     = errors.New("failed to cache translation snapshot")
)
