package config

import (
	"fmt"
	"strings"
)

// Framework holds the settings shared by bones, the sanitizer and i18n.
type Framework struct {
	// SearchValidChars are the characters kept in search tags.
	SearchValidChars string `env:"BONES_SEARCH_VALID_CHARS" envDefault:"0123456789abcdefghijklmnopqrstuvwxyzäöüß"`

	// MaxPasswordLength caps the stored password hash.
	MaxPasswordLength int `env:"BONES_MAX_PASSWORD_LENGTH" envDefault:"512"`

	// LanguageAliasMap lists comma separated src:dst pairs, e.g. "de-at:de,en-gb:en".
	LanguageAliasMap []string `env:"BONES_LANGUAGE_ALIAS_MAP" envSeparator:","`

	DefaultLanguage string `env:"BONES_DEFAULT_LANGUAGE" envDefault:"en"`

	// Languages available to multi-language text bones.
	Languages []string `env:"BONES_LANGUAGES" envSeparator:"," envDefault:"en"`

	TextMaxLength int `env:"BONES_TEXT_MAX_LENGTH" envDefault:"200000"`

	// SanitizerPolicy is an optional YAML policy file replacing the default policy.
	SanitizerPolicy string `env:"BONES_SANITIZER_POLICY"`
}

// Aliases parses LanguageAliasMap into a src → dst map.
func (f Framework) Aliases() (map[string]string, error) {
	aliases := make(map[string]string, len(f.LanguageAliasMap))
	for _, pair := range f.LanguageAliasMap {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		src, dst, ok := strings.Cut(pair, ":")
		src, dst = strings.TrimSpace(src), strings.TrimSpace(dst)
		if !ok || src == "" || dst == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidAliasMap, pair)
		}
		aliases[src] = dst
	}
	return aliases, nil
}
