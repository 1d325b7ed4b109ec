// Package commands implements the expensectl command tree.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/gestion-frais/expense-ledger/internal/core/service"
	"github.com/gestion-frais/expense-ledger/internal/core/view"
	"github.com/gestion-frais/expense-ledger/internal/infrastructure/backend"
	"github.com/gestion-frais/expense-ledger/internal/infrastructure/config"
	"github.com/gestion-frais/expense-ledger/pkg/logger"
)

// app is shared by every subcommand. It is filled in by the root
// PersistentPreRunE and torn down by PersistentPostRunE.
type app struct {
	cfg       *config.Config
	store     *backend.Result
	workspace *service.Workspace
	projector *view.Projector
}

// NewRootCmd builds the expensectl command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}
	var verbose bool

	root := &cobra.Command{
		Use:   "expensectl",
		Short: "Track employee expense advances and their justification",
		Long: `expensectl records what employees withdraw for missions and how much of it
they have justified with receipts, and reports the outstanding balance per
employee.

It works on a local ledger file by default. Set API_URL to drive a running
expense ledger server instead.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(cmd.Context(), cmd.ErrOrStderr(), verbose)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close(cmd.Context())
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log store activity to stderr")

	root.AddCommand(
		newListCmd(a),
		newSummaryCmd(a),
		newAddCmd(a),
		newEditCmd(a),
		newDeleteCmd(a),
		newChartCmd(a),
		newExportCmd(a),
	)
	return root
}

func (a *app) open(ctx context.Context, stderr io.Writer, verbose bool) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := "disabled"
	if verbose {
		level = "debug"
	}
	logger.Reset()
	logger.Init(logger.Options{Level: level, Pretty: true, Output: stderr})

	store, err := backend.OpenClientStore(ctx, cfg, logger.For("store"))
	if err != nil {
		return fmt.Errorf("open ledger: %w", err)
	}
	a.store = store
	a.projector = view.NewProjector(cfg.Currency.Locale, cfg.Currency.Suffix)
	a.workspace = service.NewWorkspace(store.Store, a.projector, stderrAlerter{w: stderr}, logger.For("workspace"))
	return nil
}

func (a *app) close(ctx context.Context) error {
	if a.store == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return a.store.Close(ctx)
}

// stderrAlerter is the terminal's blocking alert: the message is written
// before the command returns its error.
type stderrAlerter struct {
	w io.Writer
}

func (s stderrAlerter) Alert(_ context.Context, message string) {
	fmt.Fprintln(s.w, "!", message)
}
