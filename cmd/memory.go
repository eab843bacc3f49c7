package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fleetyard/fleetagent/config"
	corememory "github.com/fleetyard/fleetagent/core/memory"
	inframemory "github.com/fleetyard/fleetagent/infra/memory"
)

var memoryCmd = &cobra.Command{
	Use:   "memory",
	Short: "Inspect or clear the notification memory",
}

var memoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded notification attempts",
	RunE:  memoryList,
}

var memoryClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all records, forcing resends on the next pass",
	RunE:  memoryClear,
}

func init() {
	memoryCmd.AddCommand(memoryListCmd, memoryClearCmd)
	rootCmd.AddCommand(memoryCmd)
}

func openStore() (corememory.Store, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return inframemory.NewSQLiteStore(cfg.Memory.Path)
}

func memoryList(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	recs, err := store.List(context.Background())
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SENT AT\tVEHICLE\tKIND\tSTATUS\tRECIPIENT\tREASON")
	for _, r := range recs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.SentAt.Format("2006-01-02 15:04"), r.Vehicle, r.Kind, r.Status, r.Recipient, r.Reason)
	}
	return w.Flush()
}

func memoryClear(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.Clear(context.Background()); err != nil {
		return err
	}
	fmt.Println("notification memory cleared")
	return nil
}
