package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/naka-gawa/gh-activity/internal/domain"
)

// ReviewReport is the JSON shape of the reviewers report.
type ReviewReport struct {
	Contributors []domain.Contributor `json:"contributors"`
	Summary      Summary              `json:"summary"`
}

// WriteJSON writes v as pretty-printed JSON.
func WriteJSON(w io.Writer, v any) error {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results to JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(jsonData))
	return err
}
