// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// entity.go - Entity lifecycle commands.
//
// Command: entity
// Subcommands:
//   add <title>           Create an entity (--product, --type, --body, --status)
//   list                  List entities (--product, --type, --status, --since)
//   show <id>             Render one entity as markdown
//   tag <id>              Replace tag associations (--personas, --features, --values)
//   promote <id>          Promote a capture to a concrete type (--to)
//   archive <id>          Soft-archive an entity
//
// Examples:
//   prodtrack entity add "Checkout drop-off" --product 1a2b --type problem --status active
//   prodtrack entity list --product 1a2b --type problem --since 2024-06-01
//   prodtrack entity promote 9f8e --to problem

package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jeranaias/prodtrack/internal/export"
	"github.com/jeranaias/prodtrack/internal/model"
	"github.com/jeranaias/prodtrack/internal/storage"
	"github.com/jeranaias/prodtrack/internal/util"
)

// listTitleWidth caps entity titles in list output so one rambling title
// does not blow out the whole table.
const listTitleWidth = 60

var (
	entityProductID string
	entityType      string
	entityBody      string
	entityStatus    string
	entityMetadata  string
	entitySince     string
	promoteTarget   string
	tagPersonas     []string
	tagFeatures     []string
	tagValues       []string
)

var entityCmd = &cobra.Command{
	Use:   "entity",
	Short: "Manage entities (problems, hypotheses, experiments, ...)",
}

var entityAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Create an entity",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		e := model.NewEntity(entityProductID, model.EntityType(entityType), args[0])
		e.Body = entityBody
		e.Status = entityStatus
		e.Metadata = entityMetadata
		if err := st.CreateEntity(e); err != nil {
			return err
		}
		fmt.Printf("Created %s %s (%s)\n", e.Type.Label(), e.Title, shortID(e.ID))
		return nil
	},
}

var entityListCmd = &cobra.Command{
	Use:   "list",
	Short: "List entities, most recently updated first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		var filter storage.EntityFilter
		if entityType != "" {
			filter.Types = []model.EntityType{model.EntityType(entityType)}
		}
		if entityStatus != "" {
			filter.Statuses = []string{entityStatus}
		}
		if entitySince != "" {
			since, err := parseDate(entitySince)
			if err != nil {
				return err
			}
			filter.Since = &since
		}

		entities, err := st.ListEntities(entityProductID, filter)
		if err != nil {
			return err
		}

		rows := make([][]string, 0, len(entities))
		for _, e := range entities {
			rows = append(rows, entityRow(e))
		}
		fmt.Print(renderTable([]string{"ID", "TYPE", "TITLE", "STATUS", "UPDATED"}, rows))
		fmt.Println(mutedStyle.Render(countFooter(len(entities), "entity", "entities")))
		return nil
	},
}

var entityShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Render one entity as markdown",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		e, err := st.GetEntity(args[0])
		if err != nil {
			return err
		}
		ctx, err := st.GetEntityContext(e.ID)
		if err != nil {
			return err
		}
		tags, err := st.ResolveTagNames(ctx)
		if err != nil {
			return err
		}
		links, err := st.ListOutgoingRelationships(e.ID)
		if err != nil {
			return err
		}

		displayMarkdown(export.RenderEntity(e, tags, links))
		return nil
	},
}

var entityTagCmd = &cobra.Command{
	Use:   "tag <id>",
	Short: "Replace an entity's tag associations",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := model.EntityContext{
			PersonaIDs:        tagPersonas,
			FeatureIDs:        tagFeatures,
			DimensionValueIDs: tagValues,
		}
		if err := st.SetEntityContext(args[0], ctx); err != nil {
			return err
		}
		fmt.Println("Tags updated.")
		return nil
	},
}

var entityPromoteCmd = &cobra.Command{
	Use:   "promote <id>",
	Short: "Promote a capture to a concrete entity type",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		promoted, err := st.PromoteCapture(args[0], model.EntityType(promoteTarget))
		if err != nil {
			return err
		}
		fmt.Printf("Promoted to %s (%s)\n", promoted.Type.Label(), shortID(promoted.ID))
		return nil
	},
}

var entityArchiveCmd = &cobra.Command{
	Use:   "archive <id>",
	Short: "Archive an entity",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.ArchiveEntity(args[0]); err != nil {
			return err
		}
		fmt.Println("Archived.")
		return nil
	},
}

// entityRow builds one list-table row, ellipsizing long titles.
func entityRow(e *model.Entity) []string {
	return []string{
		shortID(e.ID),
		e.Type.Label(),
		util.TruncateRunes(e.Title, listTitleWidth),
		e.Status,
		model.ShortDate(e.UpdatedAt),
	}
}

// parseDate accepts YYYY-MM-DD.
func parseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return t, nil
}

func init() {
	entityAddCmd.Flags().StringVar(&entityProductID, "product", "", "product id")
	entityAddCmd.Flags().StringVar(&entityType, "type", string(model.TypeCapture), "entity type")
	entityAddCmd.Flags().StringVar(&entityBody, "body", "", "body text")
	entityAddCmd.Flags().StringVar(&entityStatus, "status", "", "status")
	entityAddCmd.Flags().StringVar(&entityMetadata, "metadata", "", "metadata JSON")
	entityAddCmd.MarkFlagRequired("product")

	entityListCmd.Flags().StringVar(&entityProductID, "product", "", "product id (or \"all\")")
	entityListCmd.Flags().StringVar(&entityType, "type", "", "filter by entity type")
	entityListCmd.Flags().StringVar(&entityStatus, "status", "", "filter by status")
	entityListCmd.Flags().StringVar(&entitySince, "since", "", "only entities touched on/after this date")
	entityListCmd.MarkFlagRequired("product")

	entityTagCmd.Flags().StringSliceVar(&tagPersonas, "personas", nil, "persona ids")
	entityTagCmd.Flags().StringSliceVar(&tagFeatures, "features", nil, "feature ids")
	entityTagCmd.Flags().StringSliceVar(&tagValues, "values", nil, "dimension value ids")

	entityPromoteCmd.Flags().StringVar(&promoteTarget, "to", string(model.TypeProblem), "target entity type")

	entityCmd.AddCommand(entityAddCmd, entityListCmd, entityShowCmd,
		entityTagCmd, entityPromoteCmd, entityArchiveCmd)
	rootCmd.AddCommand(entityCmd)
}
