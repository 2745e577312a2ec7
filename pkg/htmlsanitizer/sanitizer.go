package htmlsanitizer

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"

	"github.com/dmitrymomot/bones/pkg/logger"
)

const (
	// filterChars may not appear in attribute keys, attribute values or
	// style declarations.
	filterChars = "\"'\\\x00\r\n@()"
	// urlFilterChars is the relaxed set for title, href and alt values,
	// which legitimately contain '@' and parentheses.
	urlFilterChars = "\"'\\\x00\r\n"
)

var (
	textEscaper = strings.NewReplacer(
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
		"\n", "",
		"\x00", "",
	)

	relaxedAttrs = map[string]bool{"title": true, "href": true, "alt": true}

	// rawTextElements have a body that is dropped along with the tag when
	// the tag is not allowed.
	rawTextElements = map[string]bool{"script": true, "style": true}
)

// Option configures a Sanitizer.
type Option func(*Sanitizer)

// WithLogger attaches a logger that receives a debug record for every
// dropped tag and attribute.
func WithLogger(l *slog.Logger) Option {
	return func(s *Sanitizer) {
		if l != nil {
			s.logger = l
		}
	}
}

// Sanitizer applies a Policy to markup. It is safe for concurrent use.
type Sanitizer struct {
	policy *compiledPolicy
	logger *slog.Logger
}

// New returns a Sanitizer for p. A nil policy allows no tags at all.
func New(p *Policy, opts ...Option) *Sanitizer {
	s := &Sanitizer{
		policy: compile(p),
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sanitize is a shorthand for New(p).Sanitize(markup).
func Sanitize(markup string, p *Policy) string {
	return New(p).Sanitize(markup)
}

// Sanitize returns markup reduced to what the policy allows. The result is
// always well-formed: every emitted non-void tag is closed.
func (s *Sanitizer) Sanitize(markup string) string {
	st := &pass{
		policy: s.policy,
		logger: s.logger,
		debug:  s.logger.Enabled(context.Background(), slog.LevelDebug),
	}
	st.out.Grow(len(markup))
	for tok := range Scan(markup) {
		st.handle(tok)
	}
	st.cleanup()
	return st.out.String()
}

// pendingTag is a start tag that has not been written yet because the
// element has no content so far.
type pendingTag struct {
	markup string
	name   string
}

// pass holds the state of one Sanitize call.
type pass struct {
	policy *compiledPolicy
	logger *slog.Logger
	debug  bool

	out   strings.Builder
	cache []pendingTag
	// open is the stack of written, unclosed tags; the last element is the
	// most recently opened one.
	open []string
	// skip names the disallowed raw-text element whose body is being dropped.
	skip string
}

func (p *pass) handle(tok Token) {
	switch tok.Type {
	case CharDataToken:
		p.handleData(tok.Data)
	case CharRefToken:
		if p.skip != "" {
			return
		}
		p.flush()
		p.out.WriteString("&#")
		p.out.WriteString(tok.Data)
		p.out.WriteByte(';')
	case EntityRefToken:
		if p.skip != "" || !isKnownEntity(tok.Data) {
			return
		}
		p.flush()
		p.out.WriteByte('&')
		p.out.WriteString(tok.Data)
		p.out.WriteByte(';')
	case StartTagToken:
		p.handleStartTag(tok)
	case EndTagToken:
		p.handleEndTag(tok.Data)
	}
}

func (p *pass) handleData(data string) {
	if p.skip != "" {
		return
	}
	data = textEscaper.Replace(data)
	if strings.TrimSpace(data) == "" {
		// Blank text never gives a pending tag content.
		if len(p.cache) == 0 {
			p.out.WriteString(data)
		}
		return
	}
	p.flush()
	p.out.WriteString(data)
}

func (p *pass) handleStartTag(tok Token) {
	tag := tok.Data
	if !p.policy.allowsTag(tag) {
		p.drop("tag", tag)
		p.out.WriteByte(' ')
		if rawTextElements[tag] {
			p.skip = tag
		}
		return
	}

	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(tag)

	var styles, classes []string
	blankTarget := false
	for _, attr := range tok.Attr {
		k := strings.TrimSpace(attr.Key)
		v := strings.TrimSpace(attr.Val)

		switch {
		case strings.ContainsAny(k, filterChars):
			p.drop("attribute", tag, slog.String("attr", k))
			continue
		case k == "class":
			classes = strings.Split(v, " ")
			continue
		case k == "style":
			styles = strings.Split(v, ";")
			continue
		case strings.ContainsAny(v, filterChars):
			if !relaxedAttrs[k] || strings.ContainsAny(v, urlFilterChars) {
				p.drop("attribute", tag, slog.String("attr", k))
				continue
			}
		case k == "src":
			if !hasURLPrefix(v) {
				p.drop("attribute", tag, slog.String("attr", k))
				continue
			}
		}

		if !p.policy.allowsAttr(tag, k) {
			p.drop("attribute", tag, slog.String("attr", k))
			continue
		}
		if !hasPrefixFold(k, "on") && !hasPrefixFold(urlStripped(v), "javascript") {
			b.WriteByte(' ')
			b.WriteString(k)
			b.WriteString(`="`)
			b.WriteString(v)
			b.WriteByte('"')
		} else {
			p.drop("attribute", tag, slog.String("attr", k))
		}
		if tag == "a" && k == "target" && strings.EqualFold(v, "_blank") {
			blankTarget = true
		}
	}

	if style := p.filterStyles(styles); style != "" {
		b.WriteString(` style="`)
		b.WriteString(style)
		b.WriteByte('"')
	}
	if class := p.filterClasses(classes); class != "" {
		b.WriteString(` class="`)
		b.WriteString(class)
		b.WriteByte('"')
	}
	if blankTarget {
		// Keeps the opened page from reaching window.opener.
		b.WriteString(` rel="noopener noreferrer"`)
	}
	b.WriteByte('>')

	if p.policy.isSingle(tag) {
		p.flush()
		p.out.WriteString(b.String())
		return
	}
	p.cache = append(p.cache, pendingTag{markup: b.String(), name: tag})
}

// filterStyles returns the allowed declarations joined by "; ".
// A property declared twice keeps its first position and its last value.
func (p *pass) filterStyles(declarations []string) string {
	if len(declarations) == 0 {
		return ""
	}
	var order []string
	values := make(map[string]string)
	for _, decl := range declarations {
		property, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		property = strings.TrimSpace(property)
		value = strings.TrimSpace(value)
		if strings.ContainsAny(property, filterChars) || strings.ContainsAny(value, filterChars) {
			continue
		}
		// IE evaluated expression() and @import inside style values.
		if hasPrefixFold(value, "expression") || hasPrefixFold(value, "import") {
			continue
		}
		if !p.policy.allowsStyle(property) || strings.ContainsAny(value, `":;`) {
			continue
		}
		if _, seen := values[property]; !seen {
			order = append(order, property)
		}
		values[property] = value
	}

	parts := make([]string, 0, len(order))
	for _, property := range order {
		parts = append(parts, property+": "+values[property])
	}
	return strings.Join(parts, "; ")
}

func (p *pass) filterClasses(classes []string) string {
	kept := make([]string, 0, len(classes))
	for _, class := range classes {
		if class == "" || !isClassName(class) {
			continue
		}
		if p.policy.allowsClass(class) {
			kept = append(kept, class)
		}
	}
	return strings.Join(kept, " ")
}

func (p *pass) handleEndTag(tag string) {
	if !p.policy.allowsTag(tag) {
		if p.skip == tag {
			p.skip = ""
		}
		p.out.WriteByte(' ')
		return
	}

	inCache := p.cacheIndex(tag) >= 0
	onStack := p.stackIndex(tag) >= 0
	if len(p.cache) > 0 && (inCache || onStack) {
		// Pending tags never got content; discard them up to the match.
		for len(p.cache) > 0 {
			last := p.cache[len(p.cache)-1]
			p.cache = p.cache[:len(p.cache)-1]
			if last.name == tag {
				return
			}
		}
	}

	if !onStack {
		return
	}
	// Close everything opened after tag as well.
	for len(p.open) > 0 {
		name := p.open[len(p.open)-1]
		p.open = p.open[:len(p.open)-1]
		p.closeTag(name)
		if name == tag {
			return
		}
	}
}

// flush writes the pending tags and moves them onto the open stack.
func (p *pass) flush() {
	for _, pending := range p.cache {
		p.out.WriteString(pending.markup)
		p.open = append(p.open, pending.name)
	}
	p.cache = p.cache[:0]
}

func (p *pass) cleanup() {
	p.flush()
	for i := len(p.open) - 1; i >= 0; i-- {
		p.closeTag(p.open[i])
	}
	p.open = p.open[:0]
}

func (p *pass) closeTag(name string) {
	p.out.WriteString("</")
	p.out.WriteString(name)
	p.out.WriteByte('>')
}

func (p *pass) cacheIndex(tag string) int {
	for i := len(p.cache) - 1; i >= 0; i-- {
		if p.cache[i].name == tag {
			return i
		}
	}
	return -1
}

func (p *pass) stackIndex(tag string) int {
	for i := len(p.open) - 1; i >= 0; i-- {
		if p.open[i] == tag {
			return i
		}
	}
	return -1
}

func (p *pass) drop(kind, tag string, attrs ...slog.Attr) {
	if !p.debug {
		return
	}
	p.logger.LogAttrs(context.Background(), slog.LevelDebug, "sanitizer dropped "+kind,
		append([]slog.Attr{logger.Tag(tag)}, attrs...)...)
}

// urlStripped removes the whitespace and C0 control characters that browsers
// ignore when they parse a URL, so "java\tscript:" reads as "javascript:".
func urlStripped(v string) string {
	return strings.Map(func(r rune) rune {
		if r <= ' ' {
			return -1
		}
		return r
	}, v)
}

func hasURLPrefix(v string) bool {
	return hasPrefixFold(v, "http://") || hasPrefixFold(v, "https://") || strings.HasPrefix(v, "/")
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

func isClassName(class string) bool {
	for i := 0; i < len(class); i++ {
		c := class[i]
		if !isLetter(c) && !isDigit(c) && c != '-' {
			return false
		}
	}
	return true
}

// isKnownEntity reports whether name is an HTML character entity.
// Unknown names either come back unchanged or, when a known entity is a
// prefix of the name ("&notit;" starts with "&not"), decode to more than the
// one or two code points every entity expands to.
func isKnownEntity(name string) bool {
	ref := "&" + name + ";"
	decoded := html.UnescapeString(ref)
	return decoded != ref && utf8.RuneCountInString(decoded) <= 2
}
