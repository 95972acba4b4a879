package textutil

import (
	"regexp"
	"strings"
)

// Fence patterns: opening marker with an optional language tag, a line break,
// the body, an optional trailing line break, and the closing marker at the
// very end of the trimmed text.
var (
	fenceWithLang = regexp.MustCompile("(?s)^```[a-zA-Z0-9_-]*\n(.+)\n?```$")
	fenceNoLang   = regexp.MustCompile("(?s)^```\n(.+)\n?```$")
)

// StripCodeFences removes a wrapping markdown code fence from text if the
// entire trimmed content is fence-delimited.
//
// Handles patterns like:
//
//	```json\n{...}\n```
//	```\n{...}\n```
//	```JSON\n{...}\n```
//
// The fence must span the whole text: partial or interior fences, and
// unterminated fences, leave the input unchanged. The function is pure and
// never fails; on no match the original (untrimmed) text is returned.
func StripCodeFences(text string) string {
	stripped := strings.TrimSpace(text)

	if !strings.HasPrefix(stripped, "```") {
		return text
	}

	if m := fenceWithLang.FindStringSubmatch(stripped); m != nil {
		return strings.TrimSpace(m[1])
	}

	// Retry without a language tag (opening marker directly followed by a
	// line break).
	if m := fenceNoLang.FindStringSubmatch(stripped); m != nil {
		return strings.TrimSpace(m[1])
	}

	return text
}
