// Package htmlsanitize cleans user-supplied text before it is used as a
// record key or echoed back to the dashboard.
package htmlsanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strict removes every element and attribute. The policy is safe for
// concurrent use once built.
var strict = bluemonday.StrictPolicy()

// maxPasses bounds how many layers of entity encoding Text unwraps.
const maxPasses = 4

var angles = strings.NewReplacer("<", "", ">", "")

// Text strips all markup from s and returns plain, trimmed text.
// Entities are decoded afterwards so "Home & Garden" survives intact.
// Decoding can surface markup that was hidden as entities, so the policy
// runs again until the text stops changing.
func Text(s string) string {
	if s == "" {
		return ""
	}
	cur := s
	for i := 0; i < maxPasses; i++ {
		next := html.UnescapeString(strict.Sanitize(cur))
		if next == cur {
			return strings.TrimSpace(cur)
		}
		cur = next
	}
	// Still changing after maxPasses: drop anything that could open a tag.
	return strings.TrimSpace(angles.Replace(cur))
}
