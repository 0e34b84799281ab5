package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/campaign-dispatch/internal/contacts"
)

func newListsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lists",
		Short: "Fetch all contact lists from the provider",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			all, err := a.lists.Lists(cmd.Context())
			if err != nil {
				return a.renderError(err)
			}

			out := cmd.OutOrStdout()
			for _, l := range all {
				fmt.Fprintf(out, "%s\t%s\t%d contacts\t(%s)\n", l.ID, l.Name, l.ContactsCount, l.Type)
			}
			fmt.Fprintf(out, "%d list(s)\n", len(all))
			return nil
		},
	}
}

func newUploadCmd() *cobra.Command {
	var listName string
	var filePath string

	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Parse a contact CSV and bulk-add it to a list",
		Long: "Parses the CSV with heuristic column mapping (a header row is " +
			"optional), drops rows without a usable email address and submits " +
			"the rest as one bulk request. The target list is created when it " +
			"does not exist yet.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw, err := readFileArg(filePath)
			if err != nil {
				return err
			}

			result := contacts.Parse(raw)
			if len(result.Records) == 0 {
				return fmt.Errorf("no valid contacts found in %s: ensure the file contains email addresses", filePath)
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			receipt, err := a.lists.BulkAdd(cmd.Context(), listName, result.Records)
			if err != nil {
				return a.renderError(err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "submitted %d contact(s) to %q (column mapping: %s)\n",
				receipt.Accepted, receipt.ListName, result.Strategy)
			return nil
		},
	}

	cmd.Flags().StringVar(&listName, "list", "", "Target list name (created implicitly when absent).")
	cmd.Flags().StringVar(&filePath, "file", "", "Path to the contact CSV file.")
	_ = cmd.MarkFlagRequired("list")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
