package moderation

import (
	"regexp"
	"strings"
)

var (
	punctuation = strings.NewReplacer(
		".", "", ",", "", "/", "", "#", "", "!", "", "$", "", "%", "",
		"^", "", "&", "", "*", "", ";", "", ":", "", "{", "", "}", "",
		"=", "", "-", "", "_", "", "`", "", "~", "", "(", "", ")", "",
	)
	whitespace = regexp.MustCompile(`\s+`)
)

type matcher struct {
	term string
	re   *regexp.Regexp
}

// Filter reports whether text contains a blocked term as a whole word.
// It is immutable once built and safe for concurrent use.
type Filter struct {
	matchers []matcher
}

// NewFilter compiles one case-insensitive whole-word matcher per term.
// Terms are trimmed and lowercased; empty ones are ignored.
func NewFilter(terms []string) *Filter {
	f := &Filter{matchers: make([]matcher, 0, len(terms))}
	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		f.matchers = append(f.matchers, matcher{
			term: term,
			re:   regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(term) + `\b`),
		})
	}
	return f
}

// Len returns the number of active terms.
func (f *Filter) Len() int {
	return len(f.matchers)
}

// ContainsBlockedTerm reports whether text contains any blocked term as a whole word.
func (f *Filter) ContainsBlockedTerm(text string) bool {
	_, found := f.MatchedTerm(text)
	return found
}

// MatchedTerm returns the first blocked term found in text. Each term is
// checked against the lowercased text and against a copy with punctuation
// removed, so "s.h.i.t" is caught as well as "shit".
func (f *Filter) MatchedTerm(text string) (string, bool) {
	if text == "" {
		return "", false
	}

	lowered := strings.ToLower(text)
	stripped := Normalize(lowered)

	for _, m := range f.matchers {
		if m.re.MatchString(lowered) || m.re.MatchString(stripped) {
			return m.term, true
		}
	}
	return "", false
}

// Normalize removes punctuation, collapses whitespace runs and trims the result.
func Normalize(text string) string {
	text = punctuation.Replace(text)
	return strings.TrimSpace(whitespace.ReplaceAllString(text, " "))
}
