// Command aniserve serves a scraped data directory over HTTP for local
// development of a frontend against the crawl output.
package main

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/alecthomas/kong"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// CLI defines the command-line surface.
type CLI struct {
	Dir  string `help:"Directory to serve." default:"scraped_data"`
	Port int    `help:"Port to listen on." default:"8000"`
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("aniserve"),
		kong.Description("Serve scraped data over HTTP"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}
	if _, err := parser.Parse(args); err != nil {
		return err
	}

	if _, err := os.Stat(cli.Dir); err != nil {
		return fmt.Errorf("data directory %s: %w", cli.Dir, err)
	}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(corsHeaders)
	r.Method(http.MethodGet, "/*", http.FileServer(http.Dir(cli.Dir)))

	addr := fmt.Sprintf(":%d", cli.Port)
	fmt.Fprintf(stdout, "Serving %s at http://localhost%s\n", cli.Dir, addr)
	return http.ListenAndServe(addr, r)
}

// corsHeaders opens the data up to any local frontend and keeps
// browsers from caching files that change every run.
func corsHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET")
		w.Header().Set("Cache-Control", "no-cache")
		next.ServeHTTP(w, r)
	})
}
