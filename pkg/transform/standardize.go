// pkg/transform/standardize.go
package transform

import (
	"strings"
	"unicode"

	"github.com/satiap/feedback-ingress/pkg/model"
)

// standardize normalizes the designated free-text columns: leading/trailing
// whitespace is trimmed, internal whitespace runs collapse to a single space,
// and casing follows the per-column policy. The whole step is idempotent.
func (e *Engine) standardize(t *model.Table, report *model.Report) (*model.Table, error) {
	if len(e.rules.TextPolicies) == 0 {
		return t, nil
	}

	cols := t.Columns()
	rows := t.Rows()

	for _, policy := range e.rules.TextPolicies {
		idx := -1
		for j, name := range cols {
			if name == policy.Column {
				idx = j
				break
			}
		}
		if idx < 0 {
			continue
		}

		for i := range rows {
			rows[i][idx] = normalizeText(rows[i][idx], policy.Casing)
		}
	}

	return model.NewTable(cols, rows)
}

func normalizeText(s string, casing model.CasePolicy) string {
	s = collapseWhitespace(s)

	switch casing {
	case model.CaseUpper:
		return strings.ToUpper(s)
	case model.CaseLower:
		return strings.ToLower(s)
	case model.CaseTitle:
		return titleCase(s)
	default:
		return s
	}
}

// collapseWhitespace trims the string and replaces every internal run of
// whitespace with a single space.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// titleCase upper-cases the first letter of each word and lower-cases the
// rest, which is enough for the name-like columns this is applied to.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		runes := []rune(strings.ToLower(word))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
