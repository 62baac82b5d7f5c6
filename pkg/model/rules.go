// pkg/model/rules.go
package model

import (
	"errors"
	"fmt"
)

// SurgeryKind identifies a structural column operation.
type SurgeryKind string

const (
	// SurgeryDelete removes the column at a position
	SurgeryDelete SurgeryKind = "delete"
	// SurgeryMove cuts a contiguous block of columns and reinserts it elsewhere
	SurgeryMove SurgeryKind = "move"
	// SurgeryInsert adds a new empty column at a position
	SurgeryInsert SurgeryKind = "insert"
	// SurgeryRename renames the column at a position
	SurgeryRename SurgeryKind = "rename"
)

// SurgeryOp is a single scripted structural edit. All positions are
// spreadsheet-style column references (A, B, ..., AA, ...) interpreted against
// the column layout as it exists immediately before the op runs, so a script
// must be applied strictly in order.
type SurgeryOp struct {
	Kind SurgeryKind

	// At is the target position for delete, insert and rename.
	At string

	// From and To bound the inclusive block range for move.
	From string
	To   string

	// Dest is the insertion position for move; empty means "end of table".
	Dest string

	// Name is the new column name for insert and rename.
	Name string
}

// Validate checks that the op carries the fields its kind requires.
func (op SurgeryOp) Validate() error {
	switch op.Kind {
	case SurgeryDelete:
		if op.At == "" {
			return errors.New("delete op requires At")
		}
	case SurgeryMove:
		if op.From == "" || op.To == "" {
			return errors.New("move op requires From and To")
		}
	case SurgeryInsert:
		if op.At == "" || op.Name == "" {
			return errors.New("insert op requires At and Name")
		}
	case SurgeryRename:
		if op.At == "" || op.Name == "" {
			return errors.New("rename op requires At and Name")
		}
	default:
		return fmt.Errorf("unknown surgery kind %q", op.Kind)
	}
	return nil
}

// MergeGroup consolidates a set of related columns into one. For each row the
// first non-empty member value, in declared member order, becomes the merged
// value. Member columns are removed after the merge.
type MergeGroup struct {
	Name    string
	Members []string
}

// RatingScale maps an integer rating to its display label. Values outside the
// map produce an empty cell, never an error.
type RatingScale map[int]string

// CasePolicy selects the casing normalization applied to a text column.
type CasePolicy string

const (
	CaseUnchanged CasePolicy = "unchanged"
	CaseTitle     CasePolicy = "title"
	CaseUpper     CasePolicy = "upper"
	CaseLower     CasePolicy = "lower"
)

// TextPolicy designates a free-text column for standardization. Whitespace is
// always trimmed and collapsed; casing follows the policy.
type TextPolicy struct {
	Column string
	Casing CasePolicy
}

// Ruleset is the full declarative configuration for one schema version of the
// feedback export. The transformation engine is stateless; everything that
// varies between export versions lives here as data.
type Ruleset struct {
	// SchemaVersion names the export layout this ruleset was written against.
	SchemaVersion string

	// EncodingFixes maps known mis-decoded byte sequences to their correct
	// characters. No two keys overlap, so application order is irrelevant.
	EncodingFixes map[string]string

	// Surgery is the ordered structural edit script.
	Surgery []SurgeryOp

	// MergeGroups are applied in order after surgery.
	MergeGroups []MergeGroup

	// RatingColumns are remapped through RatingScale.
	RatingColumns []string
	RatingScale   RatingScale

	// DropColumns are removed unconditionally when present.
	DropColumns []string

	// TextPolicies designate the free-text columns to standardize.
	TextPolicies []TextPolicy

	// IDColumn holds the respondent identifier; rows with an empty,
	// non-numeric or duplicate value are filtered out.
	IDColumn string
}

// Validate checks internal consistency of the ruleset.
func (r *Ruleset) Validate() error {
	if r.SchemaVersion == "" {
		return errors.New("ruleset schema version is required")
	}
	if r.IDColumn == "" {
		return errors.New("ruleset ID column is required")
	}

	for i, op := range r.Surgery {
		if err := op.Validate(); err != nil {
			return fmt.Errorf("surgery op %d: %w", i, err)
		}
	}

	groupNames := make(map[string]struct{}, len(r.MergeGroups))
	for _, g := range r.MergeGroups {
		if g.Name == "" {
			return errors.New("merge group requires a name")
		}
		if len(g.Members) == 0 {
			return fmt.Errorf("merge group %q has no members", g.Name)
		}
		if _, dup := groupNames[g.Name]; dup {
			return fmt.Errorf("duplicate merge group name %q", g.Name)
		}
		groupNames[g.Name] = struct{}{}
	}

	for rating, label := range r.RatingScale {
		if label == "" {
			return fmt.Errorf("rating %d maps to an empty label", rating)
		}
	}
	if len(r.RatingColumns) > 0 && len(r.RatingScale) == 0 {
		return errors.New("rating columns designated but rating scale is empty")
	}

	for _, p := range r.TextPolicies {
		if p.Column == "" {
			return errors.New("text policy requires a column name")
		}
		switch p.Casing {
		case CaseUnchanged, CaseTitle, CaseUpper, CaseLower, "":
		default:
			return fmt.Errorf("unknown case policy %q for column %q", p.Casing, p.Column)
		}
	}

	return nil
}
