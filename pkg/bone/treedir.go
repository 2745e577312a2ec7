package bone

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrymomot/bones/pkg/logger"
	"github.com/dmitrymomot/bones/pkg/validator"
)

// TreeRepository resolves directories of a file tree.
type TreeRepository interface {
	// NodeExists reports whether key names a repository root or directory.
	NodeExists(ctx context.Context, key string) (bool, error)
	// FindChild returns the key of the directory called name below parent.
	FindChild(ctx context.Context, parentKey, name string) (key string, found bool, err error)
}

// TreeDir references a directory as "repositoryKey/path/to/dir". With the
// Multiple option it holds a list of such references; clients may submit a
// list or a newline separated string.
type TreeDir struct {
	Base
	repo TreeRepository
}

func NewTreeDir(repo TreeRepository, opts ...Option) *TreeDir {
	b := &TreeDir{Base: newBase(opts), repo: repo}
	if b.DefaultValue == nil && b.Multiple {
		b.DefaultValue = []string{}
	}
	return b
}

func (b *TreeDir) FromClient(ctx context.Context, sk *Skeleton, name string, data map[string]any) ReadFromClientErrors {
	raw, ok := data[name]
	if !ok {
		return ReadFromClientErrors{validator.NotSetError(name)}
	}
	if isBlank(raw) {
		return ReadFromClientErrors{validator.EmptyError(name, "")}
	}

	var submitted []string
	switch v := raw.(type) {
	case string:
		if b.Multiple {
			submitted = strings.Split(strings.ReplaceAll(v, "\r\n", "\n"), "\n")
		} else {
			submitted = []string{v}
		}
	default:
		submitted = toStringSlice(v)
		if !b.Multiple && len(submitted) > 1 {
			submitted = submitted[:1]
		}
	}

	var (
		accepted []string
		errs     ReadFromClientErrors
	)
	for _, value := range submitted {
		if value == "" {
			continue
		}
		if msg := b.resolve(ctx, name, value); msg != "" {
			errs = append(errs, validator.InvalidError(name, msg))
			continue
		}
		if msg := b.check(value); msg != "" {
			errs = append(errs, validator.InvalidError(name, msg))
			continue
		}
		accepted = append(accepted, value)
	}

	if len(accepted) == 0 {
		if len(errs) == 0 {
			errs = append(errs, validator.EmptyError(name, ""))
		}
		return errs
	}
	if b.Multiple {
		sk.Set(name, accepted)
	} else {
		sk.Set(name, accepted[0])
	}
	return errs
}

// resolve walks the path of value and returns an error message when it
// does not lead to an existing directory.
func (b *TreeDir) resolve(ctx context.Context, name, value string) string {
	repoKey, path, ok := strings.Cut(value, "/")
	if !ok || repoKey == "" {
		return "Invalid value"
	}
	if b.repo == nil {
		return "Invalid path supplied"
	}

	exists, err := b.repo.NodeExists(ctx, repoKey)
	if err != nil {
		b.lookupFailed(ctx, name, err)
		return "Invalid path supplied"
	}
	if !exists {
		return "Invalid path supplied"
	}

	current := repoKey
	for _, component := range strings.Split(path, "/") {
		if component == "" {
			continue
		}
		key, found, err := b.repo.FindChild(ctx, current, component)
		if err != nil {
			b.lookupFailed(ctx, name, err)
			return "Invalid path supplied"
		}
		if !found {
			return "Invalid path supplied"
		}
		current = key
	}
	return ""
}

func (b *TreeDir) lookupFailed(ctx context.Context, name string, err error) {
	b.logger.ErrorContext(ctx, "tree directory lookup failed", logger.Bone(name), logger.Error(errors.Join(ErrTreeLookup, err)))
}

func (b *TreeDir) Unserialize(sk *Skeleton, name string) bool {
	v, ok := sk.Entity[name]
	if !ok {
		if b.Multiple {
			sk.Set(name, []string{})
		}
		return false
	}
	if b.Multiple {
		sk.Set(name, toStringSlice(v))
		return true
	}
	sk.Set(name, v)
	return true
}
