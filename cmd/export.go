// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// export.go - Export commands: preview the entity set, run an export,
// open the resulting folder.
//
// Command: preview
// Command: export
// Command: open
//
// Examples:
//   prodtrack preview --product 1a2b --mode full
//   prodtrack preview --product 1a2b --mode incremental --since 2024-06-01 --linked
//   prodtrack export --product all --mode full
//   prodtrack open                 Open the most recent export folder

package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jeranaias/prodtrack/internal/export"
	"github.com/jeranaias/prodtrack/internal/model"
)

var (
	exportProductID string
	exportMode      string
	exportSince     string
	exportLinked    bool
)

// buildExportOptions translates the shared export/preview flags.
func buildExportOptions() (model.ExportOptions, error) {
	opts := model.ExportOptions{
		ProductID:            exportProductID,
		Mode:                 model.ExportMode(exportMode),
		IncludeLinkedContext: exportLinked,
	}
	if exportSince != "" {
		since, err := parseDate(exportSince)
		if err != nil {
			return opts, err
		}
		opts.StartDate = &since
	}
	return opts, nil
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Show what an export would contain, without writing anything",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		opts, err := buildExportOptions()
		if err != nil {
			return err
		}
		preview, err := export.Preview(st, opts)
		if err != nil {
			return err
		}

		fmt.Printf("Would export %d entities:\n", preview.Counts.Total)
		for _, t := range model.AllEntityTypes {
			if n := preview.Counts.ByType[t]; n > 0 {
				fmt.Printf("  %-18s %d\n", t.Folder(), n)
			}
		}
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export entities as markdown files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, cfg, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		opts, err := buildExportOptions()
		if err != nil {
			return err
		}
		result, err := export.Execute(st, cfg, opts)
		if errors.Is(err, export.ErrWorkspaceNotConfigured) {
			return fmt.Errorf("no workspace configured: set workspace_dir in %s or PRODTRACK_WORKSPACE", configPathHint())
		}
		if err != nil {
			return err
		}

		fmt.Printf("Exported %d entities to %s\n", result.Counts.Total, result.OutputPath)
		return nil
	},
}

var openCmd = &cobra.Command{
	Use:   "open [path]",
	Short: "Open an export folder in the file manager (default: most recent)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			return export.OpenFolder(args[0])
		}

		st, _, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		records, err := st.ListExportRecords("")
		if err != nil {
			return err
		}
		if len(records) == 0 {
			return errors.New("no exports yet")
		}
		return export.OpenFolder(records[0].OutputPath)
	},
}

func init() {
	for _, c := range []*cobra.Command{previewCmd, exportCmd} {
		c.Flags().StringVar(&exportProductID, "product", "", "product id (or \"all\")")
		c.Flags().StringVar(&exportMode, "mode", string(model.ModeFull), "export mode: full or incremental")
		c.Flags().StringVar(&exportSince, "since", "", "incremental cutoff date (YYYY-MM-DD)")
		c.Flags().BoolVar(&exportLinked, "linked", false, "include one hop of linked context (incremental only)")
		c.MarkFlagRequired("product")
	}

	rootCmd.AddCommand(previewCmd, exportCmd, openCmd)
}
