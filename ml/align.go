package ml

import (
	"fmt"
	"sort"
	"strings"

	"empowerher/catalog"
)

// SchemaMismatch reports drift between the model's declared columns and
// the selection field names. Missing columns were zero-filled in the
// returned vector; Extra selections were dropped from it. Either one
// means the form and the model no longer agree on a schema.
type SchemaMismatch struct {
	Missing []string `json:"missing"`
	Extra   []string `json:"extra"`
}

func (m *SchemaMismatch) Error() string {
	return fmt.Sprintf("schema mismatch: missing columns [%s], extra fields [%s]",
		strings.Join(m.Missing, ", "), strings.Join(m.Extra, ", "))
}

// Align projects named selections onto the model's column order. The
// returned vector always has exactly len(columns) entries in column
// order, with unselected columns as 0. A non-nil SchemaMismatch is
// returned whenever the column set and the selection key set are not
// identical; the caller decides whether to score anyway.
func Align(sel catalog.Selections, columns []string) ([]float64, *SchemaMismatch) {
	vector := make([]float64, len(columns))
	seen := make(map[string]bool, len(columns))

	var missing []string
	for i, col := range columns {
		seen[col] = true
		code, ok := sel[col]
		if !ok {
			missing = append(missing, col)
			continue
		}
		vector[i] = float64(code)
	}

	var extra []string
	for name := range sel {
		if !seen[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)

	if len(missing) == 0 && len(extra) == 0 {
		return vector, nil
	}
	return vector, &SchemaMismatch{Missing: missing, Extra: extra}
}
