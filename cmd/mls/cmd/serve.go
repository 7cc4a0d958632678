package cmd

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mulanstring/mls"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a development renderer over HTTP",
	Long: `Starts a simple development server that renders catalog messages.

The catalog and config are read again on every request, so edits show up
immediately. Request a message as

  GET /<locale>/<msgid>?name=value&...

Query parameters bind variables the same way --set does for render.

Examples:
  mls serve --po ./po
  curl 'localhost:9812/pl_PL/%25%7Bn%7D%25%20files?n=5'`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVarP(&servePort, "port", "p", 9812, "port on which to listen")
	serveCmd.Flags().StringVar(&renderPoDir, "po", "", "directory of <locale>.po catalogs")
	serveCmd.Flags().StringVar(&renderMoDir, "mo", "", "gettext tree of <locale>/LC_MESSAGES/<domain>.mo")
	serveCmd.Flags().StringVar(&renderDomain, "domain", "messages", "gettext domain for --mo")
}

func runServe(cmd *cobra.Command, args []string) error {
	var addr = fmt.Sprintf(":%d", servePort)
	mls.Logger.Info().Str("addr", addr).Msg("listening")
	return http.ListenAndServe(addr, http.HandlerFunc(handler))
}

func handler(res http.ResponseWriter, req *http.Request) {
	loc, msgid, ok := strings.Cut(strings.TrimPrefix(req.URL.Path, "/"), "/")
	if !ok || msgid == "" {
		http.Error(res, "want /<locale>/<msgid>", http.StatusNotFound)
		return
	}

	cfg, err := loadConfig()
	if err == nil {
		switch {
		case renderPoDir != "":
			err = catalogOverride(cfg, "po", renderPoDir, "")
		case renderMoDir != "":
			err = catalogOverride(cfg, "mo", renderMoDir, renderDomain)
		}
	}
	if err != nil {
		http.Error(res, err.Error(), http.StatusInternalServerError)
		return
	}

	tr, err := cfg.Translator(loc)
	if err != nil {
		http.Error(res, err.Error(), http.StatusInternalServerError)
		return
	}
	tmpl, err := tr.T(msgid)
	if err != nil {
		http.Error(res, err.Error(), http.StatusInternalServerError)
		return
	}
	for k, v := range req.URL.Query() {
		value, err := parseValue(tr, v[0])
		if err != nil {
			http.Error(res, err.Error(), http.StatusBadRequest)
			return
		}
		tmpl.Set(k, value)
	}

	out, err := tmpl.Render()
	if err != nil {
		http.Error(res, err.Error(), http.StatusInternalServerError)
		return
	}
	res.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(res, out)
}
