package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "campaign-cli",
		Short:         "Compose, schedule and dispatch email campaigns",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newListsCmd())
	cmd.AddCommand(newUploadCmd())
	cmd.AddCommand(newSendCmd())
	cmd.AddCommand(newScheduleCmd())
	cmd.AddCommand(newTestCmd())
	cmd.AddCommand(newCreateCampaignCmd())
	cmd.AddCommand(newTriggerCmd())
	return cmd
}
