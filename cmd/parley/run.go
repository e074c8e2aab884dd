package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/averill/parley/internal/domain"
	"github.com/averill/parley/internal/stream"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newRunCmd() *cobra.Command {
	var (
		configPath string
		orderID    string
		customer   string
		product    string
		quantity   int
		price      float64
		days       int
		priority   string
		jsonOut    bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one negotiation and print the result",
		Long:  "Runs the full three-round negotiation for a single order without starting the server.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if orderID == "" {
				orderID = "ord-" + uuid.NewString()[:8]
			}
			order := domain.Order{
				ID:                    orderID,
				Customer:              customer,
				Product:               product,
				Quantity:              quantity,
				RequestedPrice:        price,
				RequestedDeliveryDays: days,
				Priority:              domain.Priority(priority),
			}
			return runNegotiation(cmd, configPath, order, jsonOut)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Parley config file")
	cmd.Flags().StringVar(&orderID, "id", "", "order id (generated when empty)")
	cmd.Flags().StringVar(&customer, "customer", "Acme Industrial", "customer name")
	cmd.Flags().StringVar(&product, "product", "PC-400", "product code")
	cmd.Flags().IntVar(&quantity, "quantity", 50, "order quantity in units")
	cmd.Flags().Float64Var(&price, "price", 10.00, "requested unit price")
	cmd.Flags().IntVar(&days, "days", 18, "requested delivery window in days")
	cmd.Flags().StringVar(&priority, "priority", "rush", "order priority (standard|rush|critical)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "emit raw events as JSON lines")
	return cmd
}

func runNegotiation(cmd *cobra.Command, configPath string, order domain.Order, jsonOut bool) error {
	out := cmd.OutOrStdout()

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	backend, err := backendFromConfig(cfg)
	if err != nil {
		return err
	}

	pretty := !jsonOut && term.IsTerminal(int(os.Stdout.Fd()))

	driver := stream.New(stream.Options{Backend: backend})
	emit := func(ev stream.Event) error {
		if pretty {
			printPretty(cmd, ev)
			return nil
		}
		if jsonOut {
			data, err := json.Marshal(ev)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(data))
		}
		return nil
	}

	outcome, err := driver.Run(cmd.Context(), order, emit)
	if err != nil {
		return fmt.Errorf("negotiation failed: %w", err)
	}

	if !jsonOut {
		printSummary(cmd, outcome)
	}
	return nil
}

// printPretty renders one event as a progress line for interactive runs.
func printPretty(cmd *cobra.Command, ev stream.Event) {
	out := cmd.OutOrStdout()
	data, _ := ev.Data.(map[string]any)

	switch ev.Type {
	case stream.EventBackendStatus:
		fmt.Fprintf(out, "backend: %v\n", data["backend"])
	case stream.EventPhaseChange:
		fmt.Fprintf(out, "\n== %v ==\n", data["phase"])
	case stream.EventAgentMessage:
		if msg, ok := data["agentMessage"].(domain.AgentMessage); ok {
			fmt.Fprintf(out, "  [%s] %s\n", msg.From, msg.Message)
		}
	case stream.EventAgentUpdate:
		if p, ok := data["proposal"].(domain.AgentProposal); ok {
			mark := "·"
			if p.Approved {
				mark = "✓"
			}
			fmt.Fprintf(out, "  %s %-11s %s\n", mark, p.Role, p.Status)
		}
	case stream.EventRoundComplete:
		if rs, ok := data["roundSummary"].(domain.RoundSummary); ok {
			fmt.Fprintf(out, "  round %d: $%.2f, %dd, margin %.1f%%\n", rs.Round, rs.Price, rs.DeliveryDays, rs.Margin)
		}
	case stream.EventCallbackMessage:
		fmt.Fprintf(out, "  %v\n", data["message"])
	case stream.EventError:
		fmt.Fprintf(out, "error: %v\n", data["message"])
	}
}

// printSummary renders the terminal decision.
func printSummary(cmd *cobra.Command, outcome *stream.Outcome) {
	out := cmd.OutOrStdout()
	c := outcome.Consensus

	fmt.Fprintln(out)
	if c.Approved {
		fmt.Fprintf(out, "APPROVED: %s x%d for %s\n", outcome.Order.Product, outcome.Order.Quantity, outcome.Order.Customer)
		fmt.Fprintf(out, "  price:     $%.2f/unit\n", c.FinalPrice)
		fmt.Fprintf(out, "  delivery:  %d days via %s\n", c.FinalDeliveryDays, c.ShippingMode)
		fmt.Fprintf(out, "  margin:    %.1f%%\n", c.FinalMargin)
		if c.OvertimeHours > 0 {
			fmt.Fprintf(out, "  overtime:  %dh\n", c.OvertimeHours)
		}
		fmt.Fprintf(out, "  supplier:  %s\n", c.Supplier)
	} else {
		fmt.Fprintf(out, "REJECTED: %s x%d for %s\n", outcome.Order.Product, outcome.Order.Quantity, outcome.Order.Customer)
		if c.RejectionReason != "" {
			fmt.Fprintf(out, "  reason:    %s\n", c.RejectionReason)
		}
	}
	fmt.Fprintf(out, "  risk:      %s (confidence %d%%)\n", c.RiskScore, c.Confidence)
}
