// Package report renders aggregated activity for the console and for export.
package report

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"github.com/naka-gawa/gh-activity/internal/domain"
)

// Summary describes the distribution of comment totals across contributors.
type Summary struct {
	Contributors int     `json:"contributors"`
	Comments     int     `json:"comments"`
	Mean         float64 `json:"mean"`
	Median       float64 `json:"median"`
	P90          float64 `json:"p90"`
}

// Summarize computes a Summary over the ranked contributors.
func Summarize(ranked []domain.Contributor) (Summary, error) {
	summary := Summary{Contributors: len(ranked)}
	if len(ranked) == 0 {
		return summary, nil
	}

	totals := make(stats.Float64Data, 0, len(ranked))
	for _, c := range ranked {
		totals = append(totals, float64(c.Total()))
		summary.Comments += c.Total()
	}

	var err error
	if summary.Mean, err = totals.Mean(); err != nil {
		return Summary{}, fmt.Errorf("failed to compute mean: %w", err)
	}
	if summary.Median, err = totals.Median(); err != nil {
		return Summary{}, fmt.Errorf("failed to compute median: %w", err)
	}
	if summary.P90, err = totals.Percentile(90); err != nil {
		return Summary{}, fmt.Errorf("failed to compute p90: %w", err)
	}
	return summary, nil
}
