// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// snapshot.go - Copy-snapshot command: a one-page product digest meant for
// pasting into chat tools or docs.

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jeranaias/prodtrack/internal/snapshot"
)

var (
	snapshotProductID string
	snapshotRaw       bool
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Generate a copy-paste digest of current product state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		md, err := snapshot.Generate(st, snapshotProductID, time.Now())
		if err != nil {
			return err
		}

		if snapshotRaw {
			fmt.Print(md)
			return nil
		}
		displayMarkdown(md)
		return nil
	},
}

func init() {
	snapshotCmd.Flags().StringVar(&snapshotProductID, "product", "", "product id")
	snapshotCmd.Flags().BoolVar(&snapshotRaw, "raw", false, "print raw markdown even on a TTY")
	snapshotCmd.MarkFlagRequired("product")
	rootCmd.AddCommand(snapshotCmd)
}
