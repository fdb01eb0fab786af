package journal

import (
	"fmt"
	"os"
	"strings"

	"github.com/cleared-dev/tally/internal/model"
)

// Load reads journal.csv at path, validates it against the chart of accounts,
// and returns its journal entries. Any invariant violation fails the load.
func Load(path string, accounts AccountChecker) ([]model.JournalEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening journal %s: %w", path, err)
	}
	defer f.Close()

	lines, err := ReadLines(f)
	if err != nil {
		return nil, fmt.Errorf("reading journal %s: %w", path, err)
	}

	if verrs := ValidateLines(lines, accounts); len(verrs) > 0 {
		msgs := make([]string, len(verrs))
		for i, ve := range verrs {
			msgs[i] = ve.Error()
		}
		return nil, fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
	}

	return Entries(lines), nil
}
