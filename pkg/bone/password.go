package bone

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/pbkdf2"

	"github.com/dmitrymomot/bones/pkg/i18n"
	"github.com/dmitrymomot/bones/pkg/validator"
)

const (
	// SaltLength is the number of characters of a password salt.
	SaltLength = 13
	// DefaultMaxPasswordLength is the number of characters hashed at most.
	DefaultMaxPasswordLength = 512

	pbkdf2Iterations = 1001
	pbkdf2KeyLength  = 42
)

var (
	tooShortMessage = i18n.NewTranslation("server.bones.passwordBone.tooShortMessage",
		"The entered password is to short - it requires at least {{length}} characters.", "")
	tooWeakMessage = i18n.NewTranslation("server.bones.passwordBone.tooWeakMessage",
		"The entered password is too weak.", "")

	passwordMessages = map[string]i18n.Translation{
		tooShortMessage.Key: tooShortMessage,
		tooWeakMessage.Key:  tooWeakMessage,
	}
)

// PasswordConfig configures a Password bone.
type PasswordConfig struct {
	// Strength defaults to validator.DefaultPasswordStrength.
	Strength validator.PasswordStrengthConfig
	// MaxLength defaults to DefaultMaxPasswordLength.
	MaxLength int
}

// Password accepts a password from the client and stores only a salted
// PBKDF2 hash of it. A stored password is never read back into a skeleton,
// so an existing password can be replaced but not cleared.
type Password struct {
	Base
	strength  validator.PasswordStrengthConfig
	maxLength int
}

func NewPassword(cfg PasswordConfig, opts ...Option) *Password {
	b := &Password{Base: newBase(opts), strength: cfg.Strength, maxLength: cfg.MaxLength}
	if b.strength.Tests == nil {
		b.strength = validator.DefaultPasswordStrength()
	}
	if b.maxLength <= 0 {
		b.maxLength = DefaultMaxPasswordLength
	}
	b.Indexed = false
	return b
}

// FromClient rejects short and weak passwords. Messages are translated with
// the translator and locale of ctx.
func (b *Password) FromClient(ctx context.Context, sk *Skeleton, name string, data map[string]any) ReadFromClientErrors {
	raw, ok := data[name]
	if !ok {
		return ReadFromClientErrors{validator.NotSetError(name)}
	}
	if isBlank(raw) {
		return ReadFromClientErrors{validator.EmptyError(name, "")}
	}
	value := toString(raw)

	if err := validator.First(validator.StrongPassword(name, value, b.strength)...); err != nil {
		msg := err.Message
		if tr, ok := passwordMessages[strings.ToLower(err.TranslationKey)]; ok {
			msg = tr.Format(ctx, err.TranslationValues)
		}
		return ReadFromClientErrors{validator.InvalidError(name, msg)}
	}
	if msg := b.check(value); msg != "" {
		return ReadFromClientErrors{validator.InvalidError(name, msg)}
	}
	sk.Set(name, value)
	return nil
}

// Serialize stores {"pwhash": ..., "salt": ...} for a newly entered password.
func (b *Password) Serialize(sk *Skeleton, name string) bool {
	value := toString(sk.Values[name])
	if value == "" {
		return false
	}
	if r := []rune(value); len(r) > b.maxLength {
		value = string(r[:b.maxLength])
	}
	salt := rand.Text()[:SaltLength]
	sk.Entity[name] = map[string]any{
		"pwhash": HashPassword(value, salt),
		"salt":   salt,
	}
	return true
}

func (b *Password) Unserialize(*Skeleton, string) bool { return false }

// BuildDBFilter ignores every filter; hashes cannot be searched.
func (b *Password) BuildDBFilter(string, *Query, map[string]any) error { return nil }

// HashPassword returns the hex encoded PBKDF2-HMAC-SHA256 key of password.
func HashPassword(password, salt string) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), pbkdf2Iterations, pbkdf2KeyLength, sha256.New)
	return hex.EncodeToString(key)
}

// VerifyPassword reports whether password matches a value written by
// Password.Serialize. maxLength must match the bone configuration; zero
// means DefaultMaxPasswordLength.
func VerifyPassword(stored any, password string, maxLength int) bool {
	fields, ok := toStringMap(stored)
	if !ok || fields["pwhash"] == "" {
		return false
	}
	if maxLength <= 0 {
		maxLength = DefaultMaxPasswordLength
	}
	if r := []rune(password); len(r) > maxLength {
		password = string(r[:maxLength])
	}
	hash := HashPassword(password, fields["salt"])
	return subtle.ConstantTimeCompare([]byte(hash), []byte(fields["pwhash"])) == 1
}
