package sheets

import (
	"errors"
	"fmt"
)

// ErrRowWidth is returned when a ledger row does not fill its tab exactly.
var ErrRowWidth = errors.New("row width does not match tab")

// Tab is one sheet of the farm ledger. Rows start at column A and span
// Columns cells.
type Tab struct {
	Name    string
	Columns int
}

var (
	populationTab = Tab{Name: "Population", Columns: 6}
	feedTab       = Tab{Name: "Feed", Columns: 4}
	harvestTab    = Tab{Name: "Harvest", Columns: 7}
	expenseTab    = Tab{Name: "Expenses", Columns: 5}
	sampleTab     = Tab{Name: "Samples", Columns: 4}
	stockTab      = Tab{Name: "Stock", Columns: 5}
)

// Range renders the A1 notation covering every row of the tab, e.g. Feed!A:D.
func (t Tab) Range() (string, error) {
	if t.Name == "" {
		return "", errors.New("tab name must not be empty")
	}
	if t.Columns < 1 || t.Columns > 26 {
		return "", fmt.Errorf("tab %s: %d columns out of range A..Z", t.Name, t.Columns)
	}
	return fmt.Sprintf("%s!A:%c", t.Name, rune('A'+t.Columns-1)), nil
}

func (t Tab) check(row []interface{}) error {
	if len(row) != t.Columns {
		return fmt.Errorf("tab %s: %w: got %d cells, want %d", t.Name, ErrRowWidth, len(row), t.Columns)
	}
	return nil
}
