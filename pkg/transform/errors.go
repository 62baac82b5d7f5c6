// pkg/transform/errors.go
package transform

import (
	"errors"
	"fmt"

	"github.com/satiap/feedback-ingress/pkg/model"
)

// SchemaMismatchError signals that a scripted structural edit referenced a
// column position that does not exist in the current table layout. The input
// shape is versioned; drift aborts the whole transformation rather than being
// silently patched.
type SchemaMismatchError struct {
	Op          model.SurgeryKind
	Ref         string
	Index       int
	ColumnCount int
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf(
		"schema mismatch: %s references column %s (index %d) but table has %d columns",
		e.Op, e.Ref, e.Index, e.ColumnCount,
	)
}

// IsSchemaMismatch reports whether err is (or wraps) a SchemaMismatchError.
func IsSchemaMismatch(err error) bool {
	var sm *SchemaMismatchError
	return errors.As(err, &sm)
}
