package commands

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gestion-frais/expense-ledger/internal/core/ledger"
	"github.com/gestion-frais/expense-ledger/internal/core/view"
	"github.com/gestion-frais/expense-ledger/internal/infrastructure/chart"
	"github.com/gestion-frais/expense-ledger/internal/infrastructure/export"
)

func newChartCmd(a *app) *cobra.Command {
	var employee, mode, kind, out string
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Show chart totals, or draw them to a PNG file",
		Long: `Show the chart totals for every employee or a single one. Mode "summary"
charts withdrawn, justified and balance; mode "category" charts withdrawn
amounts per category. With --out the chart is drawn to a PNG file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.workspace.Refresh(cmd.Context()); err != nil {
				return err
			}
			a.workspace.SelectEmployeeFilter(employee)
			snap := a.workspace.SelectChartMode(mode)

			if out == "" {
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				for _, ds := range snap.Chart.Datasets {
					fmt.Fprintf(tw, "# %s\n", ds.Label)
					for i, label := range snap.Chart.Labels {
						if i < len(ds.Data) {
							fmt.Fprintf(tw, "%s\t%.2f\n", label, ds.Data[i])
						}
					}
				}
				return tw.Flush()
			}

			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := chart.NewPNGRenderer().Render(f, ledger.ChartTitle(snap.EmployeeFilter), kind, snap.Chart); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "chart written to %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&employee, "employee", "e", ledger.AllEmployees, `Employee name or "all"`)
	cmd.Flags().StringVarP(&mode, "mode", "m", string(ledger.ModeSummary), "summary or category")
	cmd.Flags().StringVarP(&kind, "type", "t", chart.KindBar, "bar or line (with --out)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write a PNG to this path")
	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	var query, out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the detail and summary tables to PDF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !strings.HasSuffix(strings.ToLower(out), ".pdf") {
				return fmt.Errorf("--out must name a .pdf file")
			}
			if _, err := a.workspace.Refresh(cmd.Context()); err != nil {
				return err
			}
			snap := a.workspace.Search(query)

			f, err := os.Create(out)
			if err != nil {
				return err
			}
			err = export.NewPDFExporter().Export(f, "Frais de mission",
				view.DetailTable(snap.Details),
				view.SummaryTable(snap.Summaries),
			)
			if cerr := f.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "report written to %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "Only export records matching this text")
	cmd.Flags().StringVarP(&out, "out", "o", "expenses.pdf", "Output file")
	return cmd
}
