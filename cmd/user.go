package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/gh-activity/internal/report"
	"github.com/naka-gawa/gh-activity/internal/usecase"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Lookup activity by user and timeframe",
	Long:  `Lists the issues and pull requests a user commented on within the timeframe, with links to each comment.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		timeframe, _ := cmd.Flags().GetString("timeframe")
		scope, _ := cmd.Flags().GetString("repo")
		format, _ := cmd.Flags().GetString("format")

		if format != "text" && format != "json" {
			return fmt.Errorf("unknown format %q", format)
		}

		env, err := setup(cmd, timeframe)
		if err != nil {
			return err
		}

		activity, err := usecase.NewUserActivity(env.client, env.logger, env.concurrency).
			ListMatchingComments(cmd.Context(), usecase.QuerySpec{Scope: scope}, env.cutoff, name)
		if err != nil {
			return fmt.Errorf("failed to list user activity: %w", err)
		}

		if format == "json" {
			return report.WriteJSON(cmd.OutOrStdout(), activity)
		}
		return report.WriteUserActivity(cmd.OutOrStdout(), activity)
	},
}

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.Flags().StringP("name", "n", "", "GitHub username to query activity (required)")
	userCmd.Flags().StringP("timeframe", "t", "", "How far back to look, e.g. 7d, 2w, 36h (required)")
	userCmd.Flags().StringP("repo", "r", "", "Restrict to a repository (owner/repo) or owner")
	userCmd.Flags().StringP("format", "f", "text", "Output format: text or json")
	userCmd.Flags().Int("concurrency", 0, "Maximum concurrent item fetches (0 = unbounded)")
	userCmd.MarkFlagRequired("name")
	userCmd.MarkFlagRequired("timeframe")
}
