package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satiap/feedback-ingress/pkg/model"
)

func TestStandardizeWhitespaceAndCasing(t *testing.T) {
	engine := newEngine(t, &model.Ruleset{
		SchemaVersion: "test-v1",
		IDColumn:      "ID",
		TextPolicies: []model.TextPolicy{
			{Column: "code", Casing: model.CaseUpper},
			{Column: "name", Casing: model.CaseTitle},
			{Column: "comment", Casing: model.CaseUnchanged},
		},
	})
	table := mustTable(t,
		[]string{"ID", "code", "name", "comment", "untouched"},
		[][]string{
			{"1", "  st-042 ", "MARIE   joseph", "  bon   sèvis  ", "  raw  "},
		},
	)

	out, err := engine.standardize(table, &model.Report{})
	require.NoError(t, err)

	code, _ := out.CellByName(0, "code")
	assert.Equal(t, "ST-042", code)

	name, _ := out.CellByName(0, "name")
	assert.Equal(t, "Marie Joseph", name)

	comment, _ := out.CellByName(0, "comment")
	assert.Equal(t, "bon sèvis", comment)

	// Columns without a policy keep their raw content.
	untouched, _ := out.CellByName(0, "untouched")
	assert.Equal(t, "  raw  ", untouched)
}

func TestStandardizeIsIdempotent(t *testing.T) {
	engine := newEngine(t, &model.Ruleset{
		SchemaVersion: "test-v1",
		IDColumn:      "ID",
		TextPolicies: []model.TextPolicy{
			{Column: "code", Casing: model.CaseUpper},
			{Column: "comment", Casing: model.CaseUnchanged},
		},
	})
	table := mustTable(t,
		[]string{"ID", "code", "comment"},
		[][]string{
			{"1", " st 12 ", "mwen  kontan\tanpil"},
			{"2", "", "   "},
		},
	)

	once, err := engine.standardize(table, &model.Report{})
	require.NoError(t, err)
	twice, err := engine.standardize(once, &model.Report{})
	require.NoError(t, err)

	assert.Equal(t, once.Rows(), twice.Rows())
}

func TestStandardizeEmptyCellsStayEmpty(t *testing.T) {
	engine := newEngine(t, &model.Ruleset{
		SchemaVersion: "test-v1",
		IDColumn:      "ID",
		TextPolicies:  []model.TextPolicy{{Column: "c", Casing: model.CaseLower}},
	})
	table := mustTable(t,
		[]string{"ID", "c"},
		[][]string{{"1", ""}, {"2", " \t "}},
	)

	out, err := engine.standardize(table, &model.Report{})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		got, err := out.CellByName(i, "c")
		require.NoError(t, err)
		assert.Equal(t, "", got)
	}
}
