// Package cmd implements the mls command line tool.
package cmd

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mulanstring/mls"
)

var (
	cfgFile string
	envFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "mls",
	Short: "Render and check localized string templates",
	Long: `mls renders localized string templates and checks message catalogs.

Templates use %{...}% tags for variables, grammatical gender and case,
plural forms and number formatting.

Commands:
  render  - render one template or catalog message
  check   - compile every message of PO catalogs`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		} else {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
		}
		if envFile != "" {
			return godotenv.Load(envFile)
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML or TOML config file (default: $MLS_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "load environment variables from a .env file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig reads --config or $MLS_CONFIG, or returns an empty config when
// neither is set.
func loadConfig() (*mls.Config, error) {
	var path = cfgFile
	if path == "" {
		path = os.Getenv("MLS_CONFIG")
	}
	if path == "" {
		return &mls.Config{}, nil
	}
	return mls.LoadConfig(path)
}

// envLocale returns the locale named by the environment, following the
// gettext order of precedence.
func envLocale() string {
	for _, name := range []string{"MLS_LOCALE", "LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// catalogOverride points cfg at a catalog directory given on the command
// line. Relative paths are taken from the working directory.
func catalogOverride(cfg *mls.Config, kind, dir, domain string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	cfg.Catalog = mls.CatalogConfig{Kind: kind, Dir: abs, Domain: domain}
	return nil
}
