package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/campaign-dispatch/internal/models"
)

func newCreateCampaignCmd() *cobra.Command {
	var def models.CampaignDefinition

	cmd := &cobra.Command{
		Use:   "create-campaign",
		Short: "Create a new trigger campaign at the provider",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			receipt, err := a.dispatch.CreateCampaign(cmd.Context(), def)
			if err != nil {
				return a.renderError(err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "campaign created (trace %s)\n", receipt.TraceID)
			if len(receipt.Raw) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), string(receipt.Raw))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&def.Name, "name", "", "Campaign name.")
	cmd.Flags().StringVar(&def.TemplateID, "template", "", "Template id the campaign renders.")
	cmd.Flags().StringVar(&def.Subject, "subject", "", "Campaign subject line.")
	cmd.Flags().StringVar(&def.FromName, "from-name", "", "Sender display name.")
	cmd.Flags().StringVar(&def.ReplyTo, "reply-to", "", "Reply-to address.")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("template")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}

func newTriggerCmd() *cobra.Command {
	var campaignID string
	var req models.TriggerRequest

	cmd := &cobra.Command{
		Use:   "trigger",
		Short: "Fire an existing trigger campaign at one recipient",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			receipt, err := a.dispatch.Trigger(cmd.Context(), campaignID, req)
			if err != nil {
				return a.renderError(err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "campaign %s triggered for %s (trace %s)\n", campaignID, req.Email, receipt.TraceID)
			return nil
		},
	}

	cmd.Flags().StringVar(&campaignID, "campaign", "", "Trigger campaign id.")
	cmd.Flags().StringVar(&req.Email, "email", "", "Recipient address.")
	cmd.Flags().StringVar(&req.Subject, "subject", "", "Subject override.")
	cmd.Flags().StringVar(&req.ReplyTo, "reply-to", "", "Reply-to override.")
	cmd.Flags().StringVar(&req.FromName, "from-name", "", "Sender display name override.")
	cmd.Flags().StringVar(&req.AddToList, "add-to-list", "", "List the recipient is added to after the send.")
	_ = cmd.MarkFlagRequired("campaign")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
