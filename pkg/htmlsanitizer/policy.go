package htmlsanitizer

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Policy describes the markup that survives sanitisation.
// A Policy must not be modified after it has been passed to New.
type Policy struct {
	// ValidTags lists the tags that are kept. Every other tag is replaced
	// with a single space.
	ValidTags []string `yaml:"validTags" json:"validTags"`

	// ValidAttrs maps a tag name to the attributes allowed on it. A tag
	// without an entry keeps no attributes apart from style and class.
	ValidAttrs map[string][]string `yaml:"validAttrs" json:"validAttrs"`

	// ValidStyles lists the CSS properties allowed inside style attributes.
	ValidStyles []string `yaml:"validStyles" json:"validStyles"`

	// ValidClasses lists allowed CSS class names. An entry ending in "*"
	// allows every class starting with the part before the asterisk.
	ValidClasses []string `yaml:"validClasses" json:"validClasses"`

	// SingleTags lists void elements that have no end tag.
	SingleTags []string `yaml:"singleTags" json:"singleTags"`
}

// DefaultPolicy returns the policy used by text fields unless configured
// otherwise. Every call returns a fresh copy.
func DefaultPolicy() *Policy {
	return &Policy{
		ValidTags: []string{
			"b", "a", "i", "u", "span", "div", "p", "img", "ol", "ul", "li", "abbr", "sub", "sup",
			"h1", "h2", "h3", "h4", "h5", "h6", "table", "thead", "tbody", "tfoot", "tr", "td", "th", "br",
			"hr", "strong", "blockquote", "em",
		},
		ValidAttrs: map[string][]string{
			"a":          {"href", "target", "title"},
			"abbr":       {"title"},
			"span":       {"title"},
			"img":        {"src", "srcset", "alt", "title"},
			"td":         {"colspan", "rowspan"},
			"p":          {"data-indent"},
			"blockquote": {"cite"},
		},
		ValidStyles:  []string{"color"},
		ValidClasses: []string{"vitxt-*", "viur-txt-*"},
		SingleTags:   []string{"br", "img", "hr"},
	}
}

// LoadPolicy decodes a YAML policy document.
func LoadPolicy(r io.Reader) (*Policy, error) {
	var p Policy
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyPolicy
		}
		return nil, errors.Join(ErrFailedToParsePolicy, err)
	}
	return &p, nil
}

// LoadPolicyFile reads a YAML policy from path.
func LoadPolicyFile(path string) (*Policy, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadPolicy, err)
	}
	return LoadPolicy(bytes.NewReader(content))
}

// compiledPolicy is the lookup form of a Policy.
type compiledPolicy struct {
	tags          map[string]struct{}
	attrs         map[string]map[string]struct{}
	styles        map[string]struct{}
	classes       map[string]struct{}
	classPrefixes []string
	single        map[string]struct{}
}

func compile(p *Policy) *compiledPolicy {
	if p == nil {
		return nil
	}
	c := &compiledPolicy{
		tags:    toSet(p.ValidTags),
		attrs:   make(map[string]map[string]struct{}, len(p.ValidAttrs)),
		styles:  toSet(p.ValidStyles),
		classes: make(map[string]struct{}, len(p.ValidClasses)),
		single:  toSet(p.SingleTags),
	}
	for tag, attrs := range p.ValidAttrs {
		c.attrs[tag] = toSet(attrs)
	}
	for _, class := range p.ValidClasses {
		if prefix, ok := strings.CutSuffix(class, "*"); ok {
			c.classPrefixes = append(c.classPrefixes, prefix)
			continue
		}
		c.classes[class] = struct{}{}
	}
	return c
}

func (c *compiledPolicy) allowsTag(tag string) bool {
	if c == nil {
		return false
	}
	_, ok := c.tags[tag]
	return ok
}

func (c *compiledPolicy) allowsAttr(tag, attr string) bool {
	attrs, ok := c.attrs[tag]
	if !ok {
		return false
	}
	_, ok = attrs[attr]
	return ok
}

func (c *compiledPolicy) allowsStyle(property string) bool {
	_, ok := c.styles[property]
	return ok
}

func (c *compiledPolicy) allowsClass(class string) bool {
	if _, ok := c.classes[class]; ok {
		return true
	}
	for _, prefix := range c.classPrefixes {
		if strings.HasPrefix(class, prefix) {
			return true
		}
	}
	return false
}

func (c *compiledPolicy) isSingle(tag string) bool {
	_, ok := c.single[tag]
	return ok
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
