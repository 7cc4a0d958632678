package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mulanstring/mls"
	"github.com/mulanstring/mls/template"
)

var checkWatch bool

var checkCmd = &cobra.Command{
	Use:   "check <dir>...",
	Short: "Compile every message of PO catalogs",
	Long: `Compiles every translated message found in *.po files under the given
directories, each for the locale named by its file. The first message that
fails to compile is reported with its position.

With --watch, the catalogs are recompiled whenever a file changes until the
command is interrupted.

Examples:
  mls check ./po
  mls check --config mls.yaml --watch ./po`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().BoolVarP(&checkWatch, "watch", "w", false, "recompile on file changes")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.Catalog = mls.CatalogConfig{}
	b, err := cfg.Bundle(checkWatch)
	if err != nil {
		return err
	}
	defer b.Close()
	for _, dir := range args {
		b.AddCatalogDir(dir)
	}

	var out = cmd.OutOrStdout()
	b.SetRecompilationCallback(func(reg *template.Registry) {
		report(cmd, reg)
	})
	registry, err := b.Compile()
	if err != nil {
		return err
	}
	report(cmd, registry)
	if !checkWatch {
		return nil
	}

	fmt.Fprintln(out, "watching for changes, interrupt to stop")
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	return nil
}

func report(cmd *cobra.Command, reg *template.Registry) {
	for _, loc := range reg.Locales() {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d templates ok\n", loc, len(reg.Names(loc)))
	}
}
