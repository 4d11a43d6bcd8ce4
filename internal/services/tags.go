package services

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// normalizeTags trims and lowercases tags, drops blanks and duplicates, and
// keeps first-seen order. nil stays nil; a list that normalizes to nothing
// becomes nil too. A Caser is not safe for concurrent use, so each call
// builds its own.
func normalizeTags(in []string) []string {
	if in == nil {
		return nil
	}
	fold := cases.Lower(language.Und)
	seen := make(map[string]struct{}, len(in))
	var out []string
	for _, t := range in {
		t = fold.String(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
