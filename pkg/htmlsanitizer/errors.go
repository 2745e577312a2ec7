package htmlsanitizer

import "errors"

// Sanitising never fails; these errors only come from policy loading.
var (
	ErrFailedToReadPolicy  = errors.New("failed to read sanitizer policy")
	ErrFailedToParsePolicy = errors.New("failed to parse sanitizer policy")
	ErrEmptyPolicy         = errors.New("sanitizer policy document is empty")
)
