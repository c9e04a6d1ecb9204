package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/andrew-r96/avalanche/internal/results"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to results db")
	runID := flag.String("run", "", "show values for one run (default: list runs)")
	metric := flag.String("metric", "", "filter to one metric name (series view)")
	last := flag.Int("last", 20, "show N most recent runs")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect --db path/to/results.db [--run id] [--metric name] [--last N] [--json]")
		os.Exit(2)
	}

	store, err := results.NewStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if *runID != "" {
		err = runValuesMode(store, *runID, *metric, *jsonOut)
	} else {
		err = runListMode(store, *last, *jsonOut)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region list-mode

func runListMode(store *results.Store, last int, jsonOut bool) error {
	runs, err := store.ListRuns(last)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(os.Stderr, "no runs found")
		return nil
	}

	if jsonOut {
		return printJSON(runs)
	}

	fmt.Printf("%-36s  %-8s  %-20s  %s\n", "Run", "Stream", "Time", "Description")
	for _, r := range runs {
		fmt.Printf("%-36s  %-8s  %-20s  %s\n",
			r.RunID, r.Stream, r.CreatedAt.Format("2006-01-02T15:04:05Z"), r.Description)
	}
	return nil
}

// #endregion list-mode

// #region values-mode

func runValuesMode(store *results.Store, runID, metric string, jsonOut bool) error {
	var values []results.ValueRecord
	var err error
	if metric != "" {
		values, err = store.Series(runID, metric)
	} else {
		values, err = store.ListValues(runID)
	}
	if err != nil {
		return err
	}
	if len(values) == 0 {
		fmt.Fprintln(os.Stderr, "no values found")
		return nil
	}

	if jsonOut {
		return printJSON(values)
	}

	fmt.Printf("%-55s  %8s  %8s\n", "Metric", "Value", "Position")
	for _, v := range values {
		fmt.Printf("%-55s  %8.4f  %8d\n", v.Name, v.Value, v.Position)
	}
	return nil
}

// #endregion values-mode

// #region helpers

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// #endregion helpers
