// Package htmlsanitizer neutralises user-submitted markup before it is
// persisted by a text field.
//
// The package is built from two pieces:
//
//   - Scan – a permissive tag-stream scanner. It never fails; malformed markup
//     is segmented on a best-effort basis into start tags, end tags, character
//     data, character references and entity references.
//
//   - Sanitizer – a whitelist state machine that consumes the token stream and
//     rewrites it according to a Policy. Start tags are held in a pending cache
//     until they receive content, so empty elements disappear, and every tag
//     that reaches the output is closed again before Sanitize returns.
//
// # Policy
//
// A Policy lists the tags, per-tag attributes, inline CSS properties and CSS
// classes that survive sanitisation. Class entries ending in "*" match by
// prefix. Tags listed in SingleTags (br, img, hr, …) are void elements and are
// written immediately.
//
// DefaultPolicy returns the policy text fields use when nothing else is
// configured. Policies can also be read from YAML with LoadPolicy and
// LoadPolicyFile.
//
// # Usage
//
//	s := htmlsanitizer.New(htmlsanitizer.DefaultPolicy())
//	clean := s.Sanitize(`<p onclick="x()">Hello <script>alert(1)</script></p>`)
//	// clean == `<p>Hello   </p>`
//
// A nil policy disallows every tag; this is how plain text is extracted for
// search indexing, see SearchTags.
//
// # Disallowed tags
//
// A disallowed start or end tag is replaced with a single space so adjacent
// words stay separated. The body of a disallowed script or style element is
// dropped entirely.
//
// # Concurrency
//
// A Sanitizer only reads its compiled policy; every Sanitize call keeps its
// cache, tag stack and output buffer local, so a single Sanitizer may be used
// from many goroutines.
package htmlsanitizer
