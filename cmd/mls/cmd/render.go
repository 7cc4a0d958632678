package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mulanstring/mls"
	"github.com/mulanstring/mls/data"
)

var (
	renderLocale  string
	renderPoDir   string
	renderMoDir   string
	renderDomain  string
	renderOnError string
	renderSet     []string
)

var renderCmd = &cobra.Command{
	Use:   "render <template|msgid>",
	Short: "Render a template",
	Long: `Renders a template for a locale. With a catalog, the argument is a
message id and its translation is rendered; otherwise the argument is the
template itself.

Values given with --set are integers, reals or text depending on how they
parse. A value starting with @ binds the catalog message it names, so that
gender and case can be taken from it.

Examples:
  mls render --locale pl_PL --set n=5 '%{n}% plik%{n!P:,i,ów}%'
  mls render --locale pl_PL --po ./po --set who=@cow --set what=@cat '%{who}% saw %{what}%'
  mls render --locale pl_PL --mo ./locale --domain app --set x=1234.5 price`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&renderLocale, "locale", "l", "", "locale (default: config default_locale, then $MLS_LOCALE, $LC_ALL, $LC_MESSAGES, $LANG)")
	renderCmd.Flags().StringVar(&renderPoDir, "po", "", "directory of <locale>.po catalogs")
	renderCmd.Flags().StringVar(&renderMoDir, "mo", "", "gettext tree of <locale>/LC_MESSAGES/<domain>.mo")
	renderCmd.Flags().StringVar(&renderDomain, "domain", "messages", "gettext domain for --mo")
	renderCmd.Flags().StringVar(&renderOnError, "on-error", "", "propagate or render_empty (default: config on_error)")
	renderCmd.Flags().StringArrayVarP(&renderSet, "set", "s", nil, "bind a variable, name=value (repeatable)")
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	switch {
	case renderPoDir != "" && renderMoDir != "":
		return fmt.Errorf("--po and --mo are exclusive")
	case renderPoDir != "":
		err = catalogOverride(cfg, "po", renderPoDir, "")
	case renderMoDir != "":
		err = catalogOverride(cfg, "mo", renderMoDir, renderDomain)
	}
	if err != nil {
		return err
	}
	if renderOnError != "" {
		cfg.OnError = renderOnError
	}

	var loc = renderLocale
	if loc == "" && cfg.DefaultLocale == "" {
		loc = envLocale()
	}
	tr, err := cfg.Translator(loc)
	if err != nil {
		return err
	}
	tmpl, err := tr.T(args[0])
	if err != nil {
		return err
	}
	for _, kv := range renderSet {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			return fmt.Errorf("--set %q: want name=value", kv)
		}
		v, err := parseValue(tr, value)
		if err != nil {
			return fmt.Errorf("--set %s: %w", name, err)
		}
		tmpl.Set(name, v)
	}

	out, err := tmpl.Render()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

// parseValue converts a command line value: @msgid is a nested template,
// then integer, real and text are tried in turn.
func parseValue(tr mls.Translator, s string) (data.Value, error) {
	if strings.HasPrefix(s, "@") {
		tmpl, err := tr.T(s[1:])
		if err != nil {
			return nil, err
		}
		return data.Template{Nested: tmpl}, nil
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return data.Int(i), nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return data.Real(f), nil
	}
	return data.Text(s), nil
}
