// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// history.go - Export history commands.
//
// Command: history
// Subcommands:
//   list                  List past export runs, newest first (default)
//   clear                 Delete export history (--product to scope)

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jeranaias/prodtrack/internal/model"
)

var historyProductID string

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past export runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		records, err := st.ListExportRecords(historyProductID)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("No exports yet.")
			return nil
		}

		rows := make([][]string, 0, len(records))
		for _, r := range records {
			scope := r.ProductID
			if r.ScopeType == model.ScopeAll {
				scope = "all"
			} else {
				scope = shortID(scope)
			}
			rows = append(rows, []string{
				shortID(r.ID),
				model.ShortDate(r.CreatedAt),
				string(r.Mode),
				scope,
				fmt.Sprintf("%d", r.Counts.Total),
				r.OutputPath,
			})
		}
		fmt.Print(renderTable([]string{"ID", "DATE", "MODE", "SCOPE", "ENTITIES", "PATH"}, rows))
		fmt.Println(mutedStyle.Render(countFooter(len(records), "export", "exports")))
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete export history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		n, err := st.ClearExportHistory(historyProductID)
		if err != nil {
			return err
		}
		fmt.Printf("Removed %d record(s).\n", n)
		return nil
	},
}

func init() {
	historyCmd.Flags().StringVar(&historyProductID, "product", "", "limit to one product")
	historyClearCmd.Flags().StringVar(&historyProductID, "product", "", "limit to one product")
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}
