package i18n

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
)

// TranslationAdapter loads the complete translation table from a source.
// Load is called once by NewTranslator and again on every Reload.
type TranslationAdapter interface {
	Load(ctx context.Context) (Table, error)
}

// MapAdapter serves a fixed in-memory table.
type MapAdapter struct {
	Data Table
}

func (a *MapAdapter) Load(_ context.Context) (Table, error) {
	if a.Data == nil {
		return make(Table), nil
	}
	out := make(Table, len(a.Data))
	out.Merge(a.Data)
	return out, nil
}

// FileAdapter reads a single JSON or YAML file.
type FileAdapter struct {
	parser Parser
	path   string
}

// NewFileAdapter returns an adapter for path. A nil parser is chosen from the
// file extension; nil is returned when path is empty or no parser fits.
func NewFileAdapter(parser Parser, path string) *FileAdapter {
	if path == "" {
		return nil
	}
	if parser == nil {
		parser = NewParserForFile(path)
	}
	if parser == nil {
		return nil
	}
	return &FileAdapter{parser: parser, path: path}
}

func (a *FileAdapter) Load(ctx context.Context) (Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadingCancelled, err)
	}

	content, err := os.ReadFile(a.path)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadFile, err)
	}
	if len(content) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, a.path)
	}

	table, err := a.parser.Parse(ctx, content)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseFile, err)
	}
	return table, nil
}

// FSAdapter merges every supported file of a directory in fsys. Files are
// processed in lexical order, so later files override earlier ones.
type FSAdapter struct {
	parser Parser
	fsys   fs.FS
	dir    string
}

// NewFSAdapter returns an adapter reading dir from fsys, typically an
// embed.FS. A nil parser accepts both JSON and YAML files.
func NewFSAdapter(parser Parser, fsys fs.FS, dir string) *FSAdapter {
	if fsys == nil {
		return nil
	}
	if dir == "" {
		dir = "."
	}
	return &FSAdapter{parser: parser, fsys: fsys, dir: dir}
}

// NewDirectoryAdapter returns an FSAdapter over a directory on disk.
func NewDirectoryAdapter(parser Parser, dir string) *FSAdapter {
	if dir == "" {
		return nil
	}
	return NewFSAdapter(parser, os.DirFS(dir), ".")
}

func (a *FSAdapter) Load(ctx context.Context) (Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadingCancelled, err)
	}

	entries, err := fs.ReadDir(a.fsys, a.dir)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadDir, err)
	}

	all := make(Table)
	var errs []error
	loaded := false
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		parser := a.parserFor(entry.Name())
		if parser == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, errors.Join(ErrLoadingCancelled, err)
		}

		name := path.Join(a.dir, entry.Name())
		content, err := fs.ReadFile(a.fsys, name)
		if err != nil {
			errs = append(errs, errors.Join(ErrFailedToReadFile, err))
			continue
		}
		if len(content) == 0 {
			continue
		}
		table, err := parser.Parse(ctx, content)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, errors.Join(ErrFailedToParseFile, err)))
			continue
		}
		all.Merge(table)
		loaded = true
	}

	if !loaded {
		return nil, errors.Join(append([]error{ErrNoTranslations}, errs...)...)
	}
	return all, nil
}

func (a *FSAdapter) parserFor(name string) Parser {
	if a.parser == nil {
		return NewParserForFile(name)
	}
	if a.parser.SupportsFileExtension(path.Ext(name)) {
		return a.parser
	}
	return nil
}
