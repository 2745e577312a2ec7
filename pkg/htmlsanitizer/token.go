package htmlsanitizer

// TokenType is the kind of a Token produced by Scan.
type TokenType uint8

const (
	// CharDataToken is a run of text. Data holds the raw text.
	CharDataToken TokenType = iota
	// StartTagToken looks like <a href="x">. Data holds the lower-cased tag name.
	StartTagToken
	// EndTagToken looks like </a>.
	EndTagToken
	// CharRefToken looks like &#39; or &#x27;. Data holds "39" or "x27".
	CharRefToken
	// EntityRefToken looks like &amp;. Data holds the entity name.
	EntityRefToken
)

func (t TokenType) String() string {
	switch t {
	case CharDataToken:
		return "CharData"
	case StartTagToken:
		return "StartTag"
	case EndTagToken:
		return "EndTag"
	case CharRefToken:
		return "CharRef"
	case EntityRefToken:
		return "EntityRef"
	}
	return "Invalid"
}

// Attribute is a single key/value pair of a start tag, in source order.
type Attribute struct {
	Key string
	Val string
}

// Token is one unit of the scanned markup.
type Token struct {
	Type TokenType
	Data string
	Attr []Attribute
}
