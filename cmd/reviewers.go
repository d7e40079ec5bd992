package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/gh-activity/internal/domain"
	"github.com/naka-gawa/gh-activity/internal/report"
	"github.com/naka-gawa/gh-activity/internal/usecase"
)

var reviewersCmd = &cobra.Command{
	Use:   "reviewers",
	Short: "Lookup review activity by repo, timeframe, and labels",
	Long: `Counts, per contributor, the conversation comments and review comments left on pull
requests updated within the timeframe, and in how many pull requests they took part.
Each --labels value runs its own search; the results are summed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, _ := cmd.Flags().GetString("repo")
		timeframe, _ := cmd.Flags().GetString("timeframe")
		labels, _ := cmd.Flags().GetStringSlice("labels")
		ignored, _ := cmd.Flags().GetStringSlice("ignored-user")
		format, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")

		switch format {
		case "text", "json", "xlsx":
		default:
			return fmt.Errorf("unknown format %q", format)
		}
		if format == "xlsx" && output == "" {
			return errors.New("--output is required for the xlsx format")
		}

		env, err := setup(cmd, timeframe)
		if err != nil {
			return err
		}

		aggregator := usecase.NewReviewAggregator(env.client, env.logger, env.concurrency)
		stats, err := aggregator.AggregateActivity(cmd.Context(), usecase.QuerySpec{Scope: repo, Labels: labels}, env.cutoff, domain.NewIgnoreSet(ignored...))
		if err != nil {
			return fmt.Errorf("failed to aggregate review activity: %w", err)
		}

		ranked := stats.Ranked()
		summary, err := report.Summarize(ranked)
		if err != nil {
			return err
		}

		switch format {
		case "json":
			return report.WriteJSON(cmd.OutOrStdout(), report.ReviewReport{Contributors: ranked, Summary: summary})
		case "xlsx":
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", output, err)
			}
			if err := report.WriteXLSX(f, ranked, summary); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		default:
			return report.WriteReviewSummary(cmd.OutOrStdout(), ranked, summary)
		}
	},
}

func init() {
	rootCmd.AddCommand(reviewersCmd)
	reviewersCmd.Flags().StringP("repo", "r", "", "Target repository (owner/repo) or owner (required)")
	reviewersCmd.Flags().StringP("timeframe", "t", "", "How far back to look, e.g. 7d, 2w, 36h (required)")
	reviewersCmd.Flags().StringSlice("labels", nil, "Labels to filter by; one search per label")
	reviewersCmd.Flags().StringSliceP("ignored-user", "i", nil, "Users to leave out of the results")
	reviewersCmd.Flags().StringP("format", "f", "text", "Output format: text, json or xlsx")
	reviewersCmd.Flags().StringP("output", "o", "", "Output file (xlsx format only)")
	reviewersCmd.Flags().Int("concurrency", 0, "Maximum concurrent pull request fetches per search (0 = unbounded)")
	reviewersCmd.MarkFlagRequired("repo")
	reviewersCmd.MarkFlagRequired("timeframe")
}
