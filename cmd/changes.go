package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/penwyp/quickmit/tool"
)

var (
	flagNameOnly bool
)

var changesCmd = &cobra.Command{
	Use:   "changes",
	Short: "List working-tree changes with their diffs",
	Long: `changes prints the raw per-file diffs the analysis engine works from:
one record per changed, non-excluded file, diff text verbatim from git.
Useful for piping the change content into other tools.`,
	RunE: runChanges,
}

func init() {
	changesCmd.Flags().BoolVar(&flagNameOnly, "name-only", false, "print file names without diff content")
	rootCmd.AddCommand(changesCmd)
}

func runChanges(cmd *cobra.Command, _ []string) error {
	if _, err := setup(); err != nil {
		return reportError(cmd, err)
	}
	defer func() { _ = appLogger.Sync() }()

	ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(flagTimeout)*time.Second)
	defer cancel()

	records, err := engineProvider().CollectChanges(ctx, tool.CollectChangesRequest{RootDir: flagDir})
	if err != nil {
		return reportError(cmd, err)
	}

	if flagJSON {
		return printJSON(cmd, records)
	}

	if len(records) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No changes detected.")
		return nil
	}

	header := lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	for _, r := range records {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), header.Render("── "+r.File))
		if !flagNameOnly {
			_, _ = fmt.Fprint(cmd.OutOrStdout(), r.Diff)
		}
	}
	return nil
}
