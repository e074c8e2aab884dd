package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/averill/parley/internal/agents"
	"github.com/averill/parley/internal/domain"
	"github.com/spf13/cobra"
)

func newAgentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agents",
		Short: "Inspect the negotiation participants",
	}

	cmd.AddCommand(newAgentsListCmd())
	cmd.AddCommand(newAgentsAnalyzeCmd())
	return cmd
}

func newAgentsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the five role evaluators",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			for _, p := range agents.Profiles() {
				fmt.Fprintf(out, "%-12s %s\n", p.ID, p.Name)
				fmt.Fprintf(out, "             %s\n", p.Description)
				fmt.Fprintf(out, "             tools: %s\n", strings.Join(p.Tools, ", "))
			}
		},
	}
}

func newAgentsAnalyzeCmd() *cobra.Command {
	var (
		configPath string
		roleName   string
		round      int
		customer   string
		product    string
		quantity   int
		price      float64
		days       int
		priority   string
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run one evaluator against an order",
		Long:  "Invokes a single role evaluator for one round and prints the proposal as JSON.",
		RunE: func(cmd *cobra.Command, args []string) error {
			role, err := domain.ParseRole(roleName)
			if err != nil {
				return err
			}
			order := domain.Order{
				ID:                    "ord-analyze",
				Customer:              customer,
				Product:               product,
				Quantity:              quantity,
				RequestedPrice:        price,
				RequestedDeliveryDays: days,
				Priority:              domain.Priority(priority),
			}
			if err := order.Validate(); err != nil {
				return err
			}
			if round < 1 || round > domain.MaxRounds {
				return fmt.Errorf("round must be between 1 and %d", domain.MaxRounds)
			}

			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			backend, err := backendFromConfig(cfg)
			if err != nil {
				return err
			}

			proposal, err := backend.Evaluate(cmd.Context(), role, order, round, nil)
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(proposal, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Parley config file")
	cmd.Flags().StringVar(&roleName, "role", "", "role to invoke (production|finance|logistics|procurement|sales)")
	cmd.Flags().IntVar(&round, "round", 1, "negotiation round (1-3)")
	cmd.Flags().StringVar(&customer, "customer", "Acme Industrial", "customer name")
	cmd.Flags().StringVar(&product, "product", "PC-400", "product code")
	cmd.Flags().IntVar(&quantity, "quantity", 50, "order quantity in units")
	cmd.Flags().Float64Var(&price, "price", 10.00, "requested unit price")
	cmd.Flags().IntVar(&days, "days", 18, "requested delivery window in days")
	cmd.Flags().StringVar(&priority, "priority", "rush", "order priority (standard|rush|critical)")
	cmd.MarkFlagRequired("role")
	return cmd
}
