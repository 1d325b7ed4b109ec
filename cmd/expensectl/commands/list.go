package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gestion-frais/expense-ledger/internal/core/view"
)

func newListCmd(a *app) *cobra.Command {
	var query string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List expense records",
		Long: `List every expense record with its outstanding balance. Balances still to be
justified are marked with "*".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.workspace.Refresh(cmd.Context()); err != nil {
				return err
			}
			snap := a.workspace.Search(query)
			printDetails(cmd.OutOrStdout(), snap.Details)
			return nil
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "Only show records with a field containing this text")
	return cmd
}

func newSummaryCmd(a *app) *cobra.Command {
	var query string
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show totals per employee",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.workspace.Refresh(cmd.Context()); err != nil {
				return err
			}
			snap := a.workspace.Search(query)
			printSummaries(cmd.OutOrStdout(), snap.Summaries)
			return nil
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "Only show employees whose name contains this text")
	return cmd
}

func printDetails(w io.Writer, rows []view.DetailRow) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "ID\tEmployé\tDate\tDestination\tCatégorie\tRetiré\tJustifié\tSolde\t\t")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			r.ID, r.EmployeeName, r.WorkDate, r.Destination, r.Category,
			r.AmountWithdrawn, r.Justification, r.Balance, mark(r.BalanceFlag))
	}
	tw.Flush()
}

func printSummaries(w io.Writer, rows []view.SummaryRow) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Employé\tTotal retiré\tTotal justifié\tSolde\t\t")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t\n",
			r.EmployeeName, r.TotalWithdrawn, r.TotalJustified, r.TotalBalance, mark(r.BalanceFlag))
	}
	tw.Flush()
}

func mark(f view.BalanceFlag) string {
	if f == view.FlagPositive {
		return "*"
	}
	return ""
}
