package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satiap/feedback-ingress/pkg/model"
)

func TestRepairEncodingFixesKnownSequences(t *testing.T) {
	engine := newEngine(t, &model.Ruleset{
		SchemaVersion: "test-v1",
		IDColumn:      "ID",
		EncodingFixes: map[string]string{
			"Ã©": "é",
			"Ã¨": "è",
		},
	})
	table := mustTable(t,
		[]string{"ID", "comment"},
		[][]string{
			{"1", "KÃ©yÃ¨s"},
			{"2", "already clean é"},
			{"3", ""},
		},
	)

	report := &model.Report{}
	out := engine.repairEncoding(table, report)

	fixed, _ := out.CellByName(0, "comment")
	assert.Equal(t, "Kéyès", fixed)

	clean, _ := out.CellByName(1, "comment")
	assert.Equal(t, "already clean é", clean)

	// One warning for the one repaired cell; untouched cells stay silent.
	warnings := report.WarningsForStage(model.StageEncoding)
	require.Len(t, warnings, 1)
	assert.Equal(t, "comment", warnings[0].Column)
	assert.Equal(t, "1", warnings[0].RowID)
	assert.Contains(t, warnings[0].Reason, "repaired")
}

func TestRepairEncodingIsIdempotent(t *testing.T) {
	engine := newEngine(t, &model.Ruleset{
		SchemaVersion: "test-v1",
		IDColumn:      "ID",
		EncodingFixes: map[string]string{"Ã©": "é"},
	})
	table := mustTable(t,
		[]string{"ID", "comment"},
		[][]string{{"1", "santÃ©"}},
	)

	once := engine.repairEncoding(table, &model.Report{})
	twice := engine.repairEncoding(once, &model.Report{})
	assert.Equal(t, once.Rows(), twice.Rows())
}

func TestRepairEncodingLeavesInvalidUTF8Untouched(t *testing.T) {
	engine := newEngine(t, &model.Ruleset{
		SchemaVersion: "test-v1",
		IDColumn:      "ID",
		EncodingFixes: map[string]string{"Ã©": "é"},
	})
	bad := string([]byte{0xff, 0xfe, 'x'})
	table := mustTable(t,
		[]string{"ID", "comment"},
		[][]string{{"7", bad}},
	)

	report := &model.Report{}
	out := engine.repairEncoding(table, report)

	got, _ := out.CellByName(0, "comment")
	assert.Equal(t, bad, got)

	warnings := report.WarningsForStage(model.StageEncoding)
	require.Len(t, warnings, 1)
	assert.Equal(t, "comment", warnings[0].Column)
	assert.Equal(t, "7", warnings[0].RowID)
}
