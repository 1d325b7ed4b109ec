package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/gestion-frais/expense-ledger/internal/core/domain"
)

// draftFlags are the record fields shared by add and edit.
type draftFlags struct {
	employee    string
	date        string
	destination string
	category    string
	withdrawn   string
	justified   string
}

func (f *draftFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.employee, "employee", "e", "", "Employee name")
	fs.StringVarP(&f.date, "date", "d", "", "Work date (YYYY-MM-DD)")
	fs.StringVar(&f.destination, "destination", "", "Mission destination")
	fs.StringVarP(&f.category, "category", "c", "", "Expense category")
	fs.StringVarP(&f.withdrawn, "withdrawn", "w", "0", "Amount withdrawn")
	fs.StringVarP(&f.justified, "justified", "j", "0", "Amount justified with receipts")
}

// apply overlays the flags the user actually set onto base.
func (f *draftFlags) apply(fs *pflag.FlagSet, base domain.Draft) (domain.Draft, error) {
	d := base
	if fs.Changed("employee") {
		d.EmployeeName = f.employee
	}
	if fs.Changed("date") {
		date, err := domain.ParseWorkDate(f.date)
		if err != nil {
			return domain.Draft{}, err
		}
		d.WorkDate = date
	}
	if fs.Changed("destination") {
		d.Destination = f.destination
	}
	if fs.Changed("category") {
		d.Category = f.category
	}
	if fs.Changed("withdrawn") {
		amount, err := parseAmount("withdrawn", f.withdrawn)
		if err != nil {
			return domain.Draft{}, err
		}
		d.AmountWithdrawn = amount
	}
	if fs.Changed("justified") {
		amount, err := parseAmount("justified", f.justified)
		if err != nil {
			return domain.Draft{}, err
		}
		d.Justification = amount
	}
	return d, nil
}

func parseAmount(name, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: --%s %q is not a number", domain.ErrValidation, name, s)
	}
	return d, nil
}

func newAddCmd(a *app) *cobra.Command {
	var flags draftFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new expense advance",
		Example: `  expensectl add -e Awa -d 2024-03-14 --destination Thiès -c Transport -w 10000 -j 4000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			draft, err := flags.apply(cmd.Flags(), domain.Draft{})
			if err != nil {
				return err
			}
			snap, err := a.workspace.SubmitExpense(cmd.Context(), draft)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "recorded; %d expense(s) in the ledger\n", len(snap.Records))
			return nil
		},
	}
	flags.register(cmd.Flags())
	_ = cmd.MarkFlagRequired("employee")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func newEditCmd(a *app) *cobra.Command {
	var flags draftFlags
	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change fields of an existing expense",
		Long:  "Load the expense into the edit buffer, apply the given flags and save it.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := a.workspace.Refresh(ctx); err != nil {
				return err
			}
			snap, err := a.workspace.BeginEdit(domain.ExpenseID(args[0]))
			if err != nil {
				return err
			}
			draft, err := flags.apply(cmd.Flags(), snap.Editing.Draft())
			if err != nil {
				a.workspace.CancelEdit()
				return err
			}
			if _, err := a.workspace.SaveEdit(ctx, draft); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "expense %s updated\n", args[0])
			return nil
		},
	}
	flags.register(cmd.Flags())
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete an expense",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.workspace.DeleteExpense(cmd.Context(), domain.ExpenseID(args[0])); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "expense %s deleted\n", args[0])
			return nil
		},
	}
}
