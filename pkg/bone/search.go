package bone

// FieldKind selects how a search backend treats a SearchField.
type FieldKind string

const (
	TextField   FieldKind = "text"
	HTMLField   FieldKind = "html"
	NumberField FieldKind = "number"
)

// SearchField is one property of a full-text search document.
type SearchField struct {
	Name     string
	Kind     FieldKind
	Value    any
	Language string
}
