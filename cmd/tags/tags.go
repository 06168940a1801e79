// Package tags manages the tag store from the command line
package tags

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bank-statementer/statementer/cmd/root"
	"github.com/bank-statementer/statementer/internal/logging"
	"github.com/bank-statementer/statementer/internal/models"
	"github.com/bank-statementer/statementer/internal/store"
)

var (
	description  string
	category     string
	exportFormat string
)

// Cmd represents the tags command
var Cmd = &cobra.Command{
	Use:   "tags",
	Short: "Inspect and edit the tag store",
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored tags in insertion order",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer(cmd.Context())
		if err != nil {
			return err
		}
		tags, err := c.GetStore().LoadTags(cmd.Context())
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "DESCRIPTION\tCATEGORY")
		for _, tag := range tags {
			fmt.Fprintf(tw, "%s\t%s\n", tag.Description, tag.Category)
		}
		return tw.Flush()
	},
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a description to category association",
	RunE: func(cmd *cobra.Command, args []string) error {
		tag := models.NewTag(description, category)
		if err := tag.Validate(); err != nil {
			return err
		}

		c, err := root.GetContainer(cmd.Context())
		if err != nil {
			return err
		}
		added, err := c.GetStore().AppendIfNew(cmd.Context(), tag)
		if err != nil {
			return err
		}

		if added {
			fmt.Fprintf(cmd.OutOrStdout(), "Added %q -> %s\n", tag.Description, tag.Category)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "An equivalent tag for %q already exists\n", tag.Description)
		}
		root.Log.Debug("Processed tag", logging.F(logging.FieldDescription, tag.Description), logging.F("added", added))
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every stored tag as JSON or YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer(cmd.Context())
		if err != nil {
			return err
		}
		tags, err := c.GetStore().LoadTags(cmd.Context())
		if err != nil {
			return err
		}
		return store.ExportTags(cmd.OutOrStdout(), tags, exportFormat)
	},
}

func init() {
	addCmd.Flags().StringVarP(&description, "description", "d", "", "Transaction description")
	addCmd.Flags().StringVarP(&category, "category", "c", "", "Category to assign")
	_ = addCmd.MarkFlagRequired("description")
	_ = addCmd.MarkFlagRequired("category")

	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", store.FormatYAML, "Export format: yaml or json")

	Cmd.AddCommand(listCmd, addCmd, exportCmd)
}
