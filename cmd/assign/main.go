// Command assign allocates rooms to the sessions of a catalog file, or to
// the built-in sample establishment, and prints one status line per session.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/hperssn/roomalloc/internal/catalog"
	"github.com/hperssn/roomalloc/internal/engine"
	"github.com/hperssn/roomalloc/internal/report"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("assign", flag.ContinueOnError)
	fs.SetOutput(stderr)
	dataPath := fs.String("data", "", "catalog JSON file (defaults to the sample establishment)")
	strict := fs.Bool("strict", false, "exit with status 2 when a session cannot be assigned")
	dumpSample := fs.Bool("dump-sample", false, "print the sample catalog and exit")
	verbose := fs.Bool("v", false, "log a run summary to stderr")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	logger := zap.NewNop()
	if *verbose {
		logger = newLogger(stderr)
	}

	if *dumpSample {
		if err := catalog.Encode(stdout, catalog.Sample()); err != nil {
			fmt.Fprintf(stderr, "assign: %v\n", err)
			return 1
		}
		return 0
	}

	c, err := loadCatalog(*dataPath)
	if err != nil {
		fmt.Fprintf(stderr, "assign: %v\n", err)
		return 1
	}

	outcomes, err := engine.AssignAll(c.Sessions, c.Rooms)
	if err != nil {
		fmt.Fprintf(stderr, "assign: %v\n", err)
		return 1
	}

	if err := report.WriteStatusLines(stdout, outcomes); err != nil {
		fmt.Fprintf(stderr, "assign: %v\n", err)
		return 1
	}

	sum := engine.Summarize(outcomes)
	logger.Info("assignment complete",
		zap.Int("rooms", len(c.Rooms)),
		zap.Int("assigned", sum.Assigned),
		zap.Int("unassignable", sum.Unassignable),
	)

	if *strict && sum.Unassignable > 0 {
		return 2
	}
	return 0
}

func loadCatalog(path string) (catalog.Catalog, error) {
	if path == "" {
		return catalog.Sample(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return catalog.Catalog{}, err
	}
	defer f.Close()

	return catalog.Decode(f)
}
