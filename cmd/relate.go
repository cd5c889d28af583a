// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// relate.go - Relationship commands: link entities and list their edges.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jeranaias/prodtrack/internal/model"
)

var (
	relateProductID string
	relateType      string
)

var relateCmd = &cobra.Command{
	Use:   "relate <source-id> <target-id>",
	Short: "Create a directed relationship between two entities",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		r := model.NewRelationship(relateProductID, args[0], args[1], relateType)
		if err := st.CreateRelationship(r); err != nil {
			return err
		}
		fmt.Printf("Linked %s -> %s (%s)\n", shortID(args[0]), shortID(args[1]), relateType)
		return nil
	},
}

var linksCmd = &cobra.Command{
	Use:   "links <id>",
	Short: "List relationships touching an entity",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		rels, err := st.ListRelationships(args[0])
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(rels))
		for _, r := range rels {
			rows = append(rows, []string{
				shortID(r.ID), shortID(r.SourceID), r.RelationshipType, shortID(r.TargetID),
			})
		}
		fmt.Print(renderTable([]string{"ID", "SOURCE", "TYPE", "TARGET"}, rows))
		return nil
	},
}

func init() {
	relateCmd.Flags().StringVar(&relateProductID, "product", "", "product id")
	relateCmd.Flags().StringVar(&relateType, "type", "relates_to", "relationship type")
	relateCmd.MarkFlagRequired("product")

	rootCmd.AddCommand(relateCmd, linksCmd)
}
