package htmlsanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/bones/pkg/htmlsanitizer"
)

func TestSearchTags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		markup     string
		validChars string
		want       []string
	}{
		{
			name:   "strips markup and short words",
			markup: "<p>Hello <b>World</b> hello, foo bar-baz</p>",
			want:   []string{"hello", "world", "barbaz"},
		},
		{
			name:   "entities decoded before filtering",
			markup: "Don&#39;t stop &amp; Größe",
			want:   []string{"dont", "stop", "größe"},
		},
		{
			name:   "script body ignored",
			markup: "<script>secretvalue</script>visible",
			want:   []string{"visible"},
		},
		{
			name:       "custom character set",
			markup:     "abc-123 abcd",
			validChars: "abc",
			want:       nil,
		},
		{
			name:   "empty",
			markup: "",
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, htmlsanitizer.SearchTags(tt.markup, tt.validChars))
		})
	}
}
