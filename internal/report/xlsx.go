package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/naka-gawa/gh-activity/internal/domain"
)

const (
	reviewersSheet = "Reviewers"
	summarySheet   = "Summary"
)

// WriteXLSX writes the ranked contributors and the summary as a workbook.
func WriteXLSX(w io.Writer, ranked []domain.Contributor, summary Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", reviewersSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	header := []interface{}{"Login", "Comments", "Review comments", "PRs participated in", "Total"}
	if err := f.SetSheetRow(reviewersSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, c := range ranked {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{c.Login, c.Comments, c.ReviewComments, c.Participated, c.Total()}
		if err := f.SetSheetRow(reviewersSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", c.Login, err)
		}
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}
	rows := [][]interface{}{
		{"Contributors", summary.Contributors},
		{"Comments", summary.Comments},
		{"Mean", summary.Mean},
		{"Median", summary.Median},
		{"P90", summary.P90},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
