package main

import (
	"fmt"

	"github.com/averill/parley/internal/store"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func newHistoryCmd() *cobra.Command {
	var (
		configPath string
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "Show persisted negotiation runs",
		Long:  "Lists recent negotiations from the history database, or shows one run in full.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			conn, err := connectFromConfig(cfg)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				return showRun(cmd, conn, args[0])
			}
			return listRuns(cmd, conn, limit)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Parley config file")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum runs to list")
	return cmd
}

func listRuns(cmd *cobra.Command, conn *gorm.DB, limit int) error {
	out := cmd.OutOrStdout()

	runs, err := store.ListRuns(conn, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "No negotiations recorded yet.")
		return nil
	}

	fmt.Fprintf(out, "%-36s  %-10s  %-8s  %-9s  %s\n", "RUN", "ORDER", "RESULT", "PRICE", "WHEN")
	for _, r := range runs {
		result := "approved"
		if !r.Approved {
			result = "rejected"
		}
		fmt.Fprintf(out, "%-36s  %-10s  %-8s  $%-8.2f  %s\n",
			r.ID, r.OrderID, result, r.FinalPrice, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func showRun(cmd *cobra.Command, conn *gorm.DB, id string) error {
	out := cmd.OutOrStdout()

	run, err := store.GetRun(conn, id)
	if err != nil {
		return err
	}

	result := "APPROVED"
	if !run.Approved {
		result = "REJECTED"
	}
	fmt.Fprintf(out, "Run %s (%s)\n", run.ID, result)
	fmt.Fprintf(out, "  order:     %s (%s x%d for %s)\n", run.OrderID, run.Product, run.Quantity, run.Customer)
	fmt.Fprintf(out, "  requested: $%.2f/unit in %d days (%s)\n", run.RequestedPrice, run.RequestedDeliveryDays, run.Priority)
	if run.Approved {
		fmt.Fprintf(out, "  final:     $%.2f/unit, %d days via %s, margin %.1f%%\n",
			run.FinalPrice, run.FinalDeliveryDays, run.ShippingMode, run.FinalMargin)
		if run.OvertimeHours > 0 {
			fmt.Fprintf(out, "  overtime:  %dh\n", run.OvertimeHours)
		}
		fmt.Fprintf(out, "  supplier:  %s\n", run.Supplier)
	} else if run.RejectionReason != "" {
		fmt.Fprintf(out, "  reason:    %s\n", run.RejectionReason)
	}
	fmt.Fprintf(out, "  risk:      %s (confidence %d%%)\n", run.RiskScore, run.Confidence)
	fmt.Fprintf(out, "  backend:   %s\n", run.Backend)

	if len(run.RoundRecords) > 0 {
		fmt.Fprintln(out, "\n  rounds:")
		for _, rec := range run.RoundRecords {
			fmt.Fprintf(out, "    %d: $%.2f, %dd, margin %.1f%%, %d/5 approved, converged=%t\n",
				rec.Round, rec.Price, rec.DeliveryDays, rec.Margin, rec.Approvals, rec.Converged)
		}
	}
	if len(run.MessageLogs) > 0 {
		fmt.Fprintln(out, "\n  dialogue:")
		for _, msg := range run.MessageLogs {
			fmt.Fprintf(out, "    r%d [%s] %s\n", msg.Round, msg.FromAgent, msg.Body)
		}
	}
	return nil
}
