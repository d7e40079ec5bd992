package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/naka-gawa/gh-activity/internal/domain"
)

func heading(w io.Writer, text string) string {
	return lipgloss.NewRenderer(w).NewStyle().Bold(true).Render(text)
}

// WriteReviewSummary prints one line per ranked contributor followed by the summary.
func WriteReviewSummary(w io.Writer, ranked []domain.Contributor, summary Summary) error {
	if _, err := fmt.Fprintln(w, heading(w, "# Review Summary:")); err != nil {
		return err
	}
	for _, c := range ranked {
		if _, err := fmt.Fprintf(w, "- %s left %d comments and %d review comments in %d PRs\n",
			c.Login, c.Comments, c.ReviewComments, c.Participated); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "\n%d contributors, %d comments (mean %.1f, median %.1f, p90 %.1f)\n",
		summary.Contributors, summary.Comments, summary.Mean, summary.Median, summary.P90)
	return err
}

// WriteUserActivity prints each item followed by links to the matching comments.
func WriteUserActivity(w io.Writer, activity []domain.ItemActivity) error {
	for _, a := range activity {
		if _, err := fmt.Fprintln(w, heading(w, fmt.Sprintf("- %s: %s", a.Item.FullName(), a.Item.Title))); err != nil {
			return err
		}
		for _, link := range a.Links {
			if _, err := fmt.Fprintf(w, "  - %s\n", link); err != nil {
				return err
			}
		}
	}
	return nil
}
