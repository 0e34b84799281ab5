package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/campaign-dispatch/internal/schedule"
)

func newSendCmd() *cobra.Command {
	var listID, subject, htmlFile string

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Broadcast a campaign to a list immediately",
		RunE: func(cmd *cobra.Command, _ []string) error {
			html, err := readFileArg(htmlFile)
			if err != nil {
				return err
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			receipt, err := a.dispatch.SendNow(cmd.Context(), listID, subject, html)
			if err != nil {
				return a.renderError(err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "campaign sent (trace %s)\n", receipt.TraceID)
			return nil
		},
	}

	cmd.Flags().StringVar(&listID, "list", "", "Target list id.")
	cmd.Flags().StringVar(&subject, "subject", "", "Campaign subject line.")
	cmd.Flags().StringVar(&htmlFile, "html-file", "", "Path to the campaign HTML content.")
	_ = cmd.MarkFlagRequired("list")
	_ = cmd.MarkFlagRequired("subject")
	_ = cmd.MarkFlagRequired("html-file")
	return cmd
}

func newScheduleCmd() *cobra.Command {
	var listID, subject, htmlFile, date, clock string

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Schedule a campaign broadcast for a future time",
		Long: "Date and time are wall-clock values in the configured fixed " +
			"offset. The canonical timestamp doubles as the idempotency key, " +
			"so re-submitting an identical schedule deduplicates at the " +
			"provider instead of double-sending.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			html, err := readFileArg(htmlFile)
			if err != nil {
				return err
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			resolver, err := schedule.NewResolver(a.cfg.Schedule.Offset)
			if err != nil {
				return err
			}

			ts, err := resolver.Resolve(date, clock)
			if err != nil {
				return err
			}
			if err := resolver.ValidateLeadTime(ts); err != nil {
				return err
			}

			receipt, err := a.dispatch.SendScheduled(cmd.Context(), listID, subject, html, ts)
			if err != nil {
				return a.renderError(err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "campaign scheduled for %s (trace %s)\n", receipt.ScheduledAt, receipt.TraceID)
			return nil
		},
	}

	cmd.Flags().StringVar(&listID, "list", "", "Target list id.")
	cmd.Flags().StringVar(&subject, "subject", "", "Campaign subject line.")
	cmd.Flags().StringVar(&htmlFile, "html-file", "", "Path to the campaign HTML content.")
	cmd.Flags().StringVar(&date, "date", "", "Schedule date (YYYY-MM-DD) in the fixed offset.")
	cmd.Flags().StringVar(&clock, "time", "", "Schedule time (HH:MM) in the fixed offset.")
	_ = cmd.MarkFlagRequired("list")
	_ = cmd.MarkFlagRequired("subject")
	_ = cmd.MarkFlagRequired("html-file")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("time")
	return cmd
}

func newTestCmd() *cobra.Command {
	var email, subject, htmlFile string

	cmd := &cobra.Command{
		Use:   "test",
		Short: "Send the campaign content to a single test recipient",
		RunE: func(cmd *cobra.Command, _ []string) error {
			html, err := readFileArg(htmlFile)
			if err != nil {
				return err
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			receipt, err := a.dispatch.SendTest(cmd.Context(), email, subject, html)
			if err != nil {
				return a.renderError(err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "test email sent to %s (trace %s)\n", email, receipt.TraceID)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Test recipient address.")
	cmd.Flags().StringVar(&subject, "subject", "", "Campaign subject line (a test marker is prefixed).")
	cmd.Flags().StringVar(&htmlFile, "html-file", "", "Path to the campaign HTML content.")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("subject")
	_ = cmd.MarkFlagRequired("html-file")
	return cmd
}
