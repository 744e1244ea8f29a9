package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"furuth/services"
)

// NewOrdersCommand creates the orders command and its status subcommand.
func NewOrdersCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "orders",
		Short:         "List orders, newest first",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer a.Close()

			orders, err := a.ledger.All(cmd.Context())
			if err != nil {
				return err
			}
			stats, err := a.ledger.Stats(cmd.Context())
			if err != nil {
				return err
			}

			money := services.NewMoney(a.cfg.ExchangeRate)
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tDATE\tCUSTOMER\tPAYMENT\tTOTAL\tSTATUS")
			for _, o := range orders {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s %s\t%s\t%s\n",
					o.ID,
					o.OrderDate.Format("2006-01-02 15:04"),
					o.Customer.Name,
					o.Payment.Method, o.Payment.TransactionID,
					money.Format(o.Totals.Total, o.Payment.Currency),
					o.Status,
				)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\n%d orders: %d pending, %d approved, %d delivered\n",
				stats.Total, stats.Pending, stats.Approved, stats.Delivered)
			return nil
		},
	}

	cmd.AddCommand(newOrderStatusCommand(rootOpts))
	return cmd
}

func newOrderStatusCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "status <order-id> <approved|delivered>",
		Short:         "Move an order to its next status",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer a.Close()

			order, err := a.ledger.UpdateStatus(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Order %s is now %s\n", order.ID, order.Status)
			return nil
		},
	}
}
