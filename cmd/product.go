// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// product.go - Product and taxonomy management commands.
//
// Command: product
// Subcommands:
//   add <name>            Create a product
//   list                  List products
//   archive <id>          Soft-archive a product
//   persona add|list      Manage personas under a product
//   feature add|list      Manage features under a product

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jeranaias/prodtrack/internal/model"
)

var productCmd = &cobra.Command{
	Use:   "product",
	Short: "Manage products and their taxonomy",
}

var productAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		p := model.NewProduct(args[0])
		if err := st.CreateProduct(p); err != nil {
			return err
		}
		fmt.Printf("Created product %s (%s)\n", p.Name, shortID(p.ID))
		return nil
	},
}

var productListCmd = &cobra.Command{
	Use:   "list",
	Short: "List products",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		products, err := st.ListProducts()
		if err != nil {
			return err
		}
		if len(products) == 0 {
			fmt.Println("No products yet. Create one with: prodtrack product add <name>")
			return nil
		}

		rows := make([][]string, 0, len(products))
		for _, p := range products {
			rows = append(rows, []string{shortID(p.ID), p.Name, model.ShortDate(p.CreatedAt)})
		}
		fmt.Print(renderTable([]string{"ID", "NAME", "CREATED"}, rows))
		fmt.Println(mutedStyle.Render(countFooter(len(products), "product", "products")))
		return nil
	},
}

var productArchiveCmd = &cobra.Command{
	Use:   "archive <id>",
	Short: "Archive a product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.ArchiveProduct(args[0]); err != nil {
			return err
		}
		fmt.Println("Archived.")
		return nil
	},
}

// ---- personas ----

var personaProductID string

var personaCmd = &cobra.Command{
	Use:   "persona",
	Short: "Manage personas",
}

var personaAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a persona",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		p := &model.Persona{ProductID: personaProductID, Name: args[0]}
		if err := st.CreatePersona(p); err != nil {
			return err
		}
		fmt.Printf("Created persona %s (%s)\n", p.Name, shortID(p.ID))
		return nil
	},
}

var personaListCmd = &cobra.Command{
	Use:   "list",
	Short: "List personas for a product",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		personas, err := st.ListPersonas(personaProductID)
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(personas))
		for _, p := range personas {
			rows = append(rows, []string{shortID(p.ID), p.Name})
		}
		fmt.Print(renderTable([]string{"ID", "NAME"}, rows))
		return nil
	},
}

// ---- features ----

var featureProductID string

var featureCmd = &cobra.Command{
	Use:   "feature",
	Short: "Manage features",
}

var featureAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a feature",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		f := &model.Feature{ProductID: featureProductID, Name: args[0]}
		if err := st.CreateFeature(f); err != nil {
			return err
		}
		fmt.Printf("Created feature %s (%s)\n", f.Name, shortID(f.ID))
		return nil
	},
}

var featureListCmd = &cobra.Command{
	Use:   "list",
	Short: "List features for a product",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		features, err := st.ListFeatures(featureProductID)
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(features))
		for _, f := range features {
			rows = append(rows, []string{shortID(f.ID), f.Name})
		}
		fmt.Print(renderTable([]string{"ID", "NAME"}, rows))
		return nil
	},
}

func init() {
	personaAddCmd.Flags().StringVar(&personaProductID, "product", "", "product id")
	personaAddCmd.MarkFlagRequired("product")
	personaListCmd.Flags().StringVar(&personaProductID, "product", "", "product id")
	personaListCmd.MarkFlagRequired("product")
	personaCmd.AddCommand(personaAddCmd, personaListCmd)

	featureAddCmd.Flags().StringVar(&featureProductID, "product", "", "product id")
	featureAddCmd.MarkFlagRequired("product")
	featureListCmd.Flags().StringVar(&featureProductID, "product", "", "product id")
	featureListCmd.MarkFlagRequired("product")
	featureCmd.AddCommand(featureAddCmd, featureListCmd)

	productCmd.AddCommand(productAddCmd, productListCmd, productArchiveCmd, personaCmd, featureCmd)
	rootCmd.AddCommand(productCmd)
}
