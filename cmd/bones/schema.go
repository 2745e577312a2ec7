package main

import (
	"fmt"
	"slices"

	"github.com/dmitrymomot/bones/pkg/bone"
	"github.com/dmitrymomot/bones/pkg/htmlsanitizer"
)

// treeKind is the tree whose directories page folders point into.
const treeKind = "file"

var pageStatus = bone.Choices("draft", "published", "archived")

// schemas builds the entity kinds the CLI manages from the framework
// settings. policy sanitizes page bodies.
func (a *app) schemas(tree bone.TreeRepository, policy *htmlsanitizer.Policy) map[string]*bone.Schema {
	f := a.framework
	plain := bone.TextConfig{
		StripTags:        true,
		MaxLength:        f.TextMaxLength,
		SearchValidChars: f.SearchValidChars,
	}

	page := bone.NewSchema("page").
		Add("title", bone.NewText(plain, bone.Required(), bone.Searchable(), bone.WithLogger(a.log))).
		Add("body", bone.NewText(bone.TextConfig{
			Policy:           policy,
			Languages:        f.Languages,
			MaxLength:        f.TextMaxLength,
			SearchValidChars: f.SearchValidChars,
		}, bone.Searchable(), bone.WithLogger(a.log))).
		Add("price", bone.NewNumeric(bone.NumericConfig{Precision: 2, Min: 0, Max: 1_000_000})).
		Add("status", bone.NewSelect(pageStatus, bone.WithDefault("draft"))).
		Add("folder", bone.NewTreeDir(tree, bone.WithLogger(a.log)))

	user := bone.NewSchema("user").
		Add("name", bone.NewText(plain, bone.Required(), bone.Searchable())).
		Add("password", bone.NewPassword(bone.PasswordConfig{MaxLength: f.MaxPasswordLength}, bone.Required())).
		Add("access", bone.NewSelectAccess([]string{"page", "user"}, []string{"root", "admin"}))

	return map[string]*bone.Schema{
		page.Kind: page,
		user.Kind: user,
	}
}

func (a *app) schema(kind string, tree bone.TreeRepository, policy *htmlsanitizer.Policy) (*bone.Schema, error) {
	all := a.schemas(tree, policy)
	s, ok := all[kind]
	if !ok {
		kinds := make([]string, 0, len(all))
		for k := range all {
			kinds = append(kinds, k)
		}
		slices.Sort(kinds)
		return nil, fmt.Errorf("unknown kind %q, want one of %v", kind, kinds)
	}
	return s, nil
}
