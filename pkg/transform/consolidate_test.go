package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/satiap/feedback-ingress/pkg/model"
)

func newEngine(t *testing.T, rules *model.Ruleset) *Engine {
	t.Helper()
	engine, err := NewEngine(rules, zap.NewNop())
	require.NoError(t, err)
	return engine
}

func TestMergeGroupFirstNonEmptyWins(t *testing.T) {
	engine := newEngine(t, &model.Ruleset{
		SchemaVersion: "test-v1",
		IDColumn:      "ID",
		MergeGroups: []model.MergeGroup{
			{Name: "Combined", Members: []string{"m1", "m2", "m3"}},
		},
	})
	table := mustTable(t,
		[]string{"ID", "m1", "m2", "m3"},
		[][]string{
			{"1", "", "", "third"},
			{"2", "first", "second", "third"},
			{"3", "", "second", ""},
			{"4", "", "", ""},
		},
	)

	report := &model.Report{}
	out, err := engine.consolidate(table, report)
	require.NoError(t, err)

	// Members are gone; the merged column is appended at the end.
	assert.Equal(t, []string{"ID", "Combined"}, out.Columns())

	expected := []string{"third", "first", "second", ""}
	for i, want := range expected {
		got, err := out.CellByName(i, "Combined")
		require.NoError(t, err)
		assert.Equal(t, want, got, "row %d", i)
	}
	assert.Equal(t, 3, report.ColumnsMerged)
}

func TestMergeGroupSkipsAbsentMembers(t *testing.T) {
	engine := newEngine(t, &model.Ruleset{
		SchemaVersion: "test-v1",
		IDColumn:      "ID",
		MergeGroups: []model.MergeGroup{
			{Name: "Combined", Members: []string{"missing", "m1"}},
		},
	})
	table := mustTable(t,
		[]string{"ID", "m1"},
		[][]string{{"1", "value"}},
	)

	report := &model.Report{}
	out, err := engine.consolidate(table, report)
	require.NoError(t, err)

	got, err := out.CellByName(0, "Combined")
	require.NoError(t, err)
	assert.Equal(t, "value", got)
	assert.Equal(t, 0, report.WarningCount())
}

func TestMergeGroupNoMembersPresentWarns(t *testing.T) {
	engine := newEngine(t, &model.Ruleset{
		SchemaVersion: "test-v1",
		IDColumn:      "ID",
		MergeGroups: []model.MergeGroup{
			{Name: "Combined", Members: []string{"gone1", "gone2"}},
		},
	})
	table := mustTable(t, []string{"ID"}, [][]string{{"1"}})

	report := &model.Report{}
	out, err := engine.consolidate(table, report)
	require.NoError(t, err)

	got, err := out.CellByName(0, "Combined")
	require.NoError(t, err)
	assert.Equal(t, "", got)

	warnings := report.WarningsForStage(model.StageConsolidate)
	require.Len(t, warnings, 1)
	assert.Equal(t, "Combined", warnings[0].Column)
}

func TestMergeGroupCollisionFails(t *testing.T) {
	engine := newEngine(t, &model.Ruleset{
		SchemaVersion: "test-v1",
		IDColumn:      "ID",
		MergeGroups: []model.MergeGroup{
			{Name: "ID", Members: []string{"m1"}},
		},
	})
	table := mustTable(t, []string{"ID", "m1"}, [][]string{{"1", "x"}})

	_, err := engine.consolidate(table, &model.Report{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collides")
}

func TestDropUnwantedColumns(t *testing.T) {
	engine := newEngine(t, &model.Ruleset{
		SchemaVersion: "test-v1",
		IDColumn:      "ID",
		DropColumns:   []string{"Email Address", "language"},
	})
	table := mustTable(t,
		[]string{"ID", "Email Address", "note", "language"},
		[][]string{{"1", "x@y.z", "good", "ht"}},
	)

	report := &model.Report{}
	out, err := engine.consolidate(table, report)
	require.NoError(t, err)
	assert.Equal(t, []string{"ID", "note"}, out.Columns())
	assert.Equal(t, 2, report.ColumnsRemoved)
}

func TestRemapRatingsFullScale(t *testing.T) {
	engine := newEngine(t, &model.Ruleset{
		SchemaVersion: "test-v1",
		IDColumn:      "ID",
		RatingColumns: []string{"note"},
		RatingScale: model.RatingScale{
			1: "1 Etwal", 2: "2 Etwal", 3: "3 Etwal", 4: "4 Etwal", 5: "5 Etwal",
		},
	})
	table := mustTable(t,
		[]string{"ID", "note"},
		[][]string{
			{"1", "1"},
			{"2", "3"},
			{"3", "5"},
			{"4", " 4 "},
			{"5", ""},
		},
	)

	report := &model.Report{}
	out, err := engine.consolidate(table, report)
	require.NoError(t, err)

	expected := []string{"1 Etwal", "3 Etwal", "5 Etwal", "4 Etwal", ""}
	for i, want := range expected {
		got, err := out.CellByName(i, "note")
		require.NoError(t, err)
		assert.Equal(t, want, got, "row %d", i)
	}
	assert.Equal(t, 0, report.WarningCount())
}

func TestRemapRatingsOutOfScale(t *testing.T) {
	engine := newEngine(t, &model.Ruleset{
		SchemaVersion: "test-v1",
		IDColumn:      "ID",
		RatingColumns: []string{"note"},
		RatingScale:   model.RatingScale{1: "1 Etwal", 5: "5 Etwal"},
	})
	table := mustTable(t,
		[]string{"ID", "note"},
		[][]string{
			{"1", "7"},
			{"2", "0"},
			{"3", "-1"},
			{"4", "great"},
		},
	)

	report := &model.Report{}
	out, err := engine.consolidate(table, report)
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		got, err := out.CellByName(i, "note")
		require.NoError(t, err)
		assert.Equal(t, "", got, "row %d", i)
	}

	warnings := report.WarningsForStage(model.StageRating)
	require.Len(t, warnings, 4)
	assert.Equal(t, "1", warnings[0].RowID)
	assert.Contains(t, warnings[0].Reason, "outside scale")
	assert.Contains(t, warnings[3].Reason, "non-numeric")
}

func TestRemapRatingsSkipsAbsentColumn(t *testing.T) {
	engine := newEngine(t, &model.Ruleset{
		SchemaVersion: "test-v1",
		IDColumn:      "ID",
		RatingColumns: []string{"missing"},
		RatingScale:   model.RatingScale{1: "1 Etwal"},
	})
	table := mustTable(t, []string{"ID"}, [][]string{{"1"}})

	report := &model.Report{}
	_, err := engine.consolidate(table, report)
	require.NoError(t, err)
	assert.Equal(t, 0, report.WarningCount())
}
