// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/datafix/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent uploads",
	Long: `History lists recent submissions recorded on this machine, newest first.
The generated scripts themselves are not kept.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of entries")
	historyCmd.Flags().Bool("yaml", false, "output entries as YAML")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	limit, _ := cmd.Flags().GetInt("limit")
	asYAML, _ := cmd.Flags().GetBool("yaml")

	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	if asYAML {
		return st.ExportYAML(ctx, os.Stdout, limit)
	}

	recs, err := st.ListAttempts(ctx, limit)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Println("No uploads recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-20s  %-9s  %-30s  %-10s  %s\n",
		"When", "Status", "File", "Case", "Result")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))
	for _, r := range recs {
		result := r.ResultFilename
		if r.Status != types.AttemptCompleted {
			result = r.Message
		}
		fmt.Fprintf(os.Stdout, "%-20s  %-9s  %-30s  %-10s  %s\n",
			r.CreatedAt.Local().Format("2006-01-02 15:04:05"), r.Status, truncate(r.FileName, 30), r.CaseID, result)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
