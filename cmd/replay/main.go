package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/andrew-r96/avalanche/internal/loop"
	"github.com/andrew-r96/avalanche/internal/metrics"
	"github.com/andrew-r96/avalanche/internal/replay"
	"github.com/andrew-r96/avalanche/internal/results"
)

// #region main

func main() {
	fixturePath := flag.String("fixture", "", "path to run fixture JSON")
	dbPath := flag.String("db", "", "optional results db to record into")
	experience := flag.Bool("experience", true, "enable per-experience forgetting")
	stream := flag.Bool("stream", true, "enable stream-averaged forgetting")
	flag.Parse()

	if *fixturePath == "" {
		fmt.Fprintln(os.Stderr, "usage: replay --fixture path/to/run.json [--db path/to/results.db] [--experience=false] [--stream=false]")
		os.Exit(2)
	}

	os.Exit(run(*fixturePath, *dbPath, *experience, *stream))
}

// #endregion main

// #region run

func run(fixturePath, dbPath string, experience, stream bool) int {
	f, err := replay.LoadFixture(fixturePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	var sink loop.Sink
	if dbPath != "" {
		store, err := results.NewStore(dbPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open results db: %v\n", err)
			return 1
		}
		defer store.Close()

		recorder, err := results.NewRecorder(store, f.Stream, f.Description)
		if err != nil {
			fmt.Fprintf(os.Stderr, "begin run: %v\n", err)
			return 1
		}
		sink = recorder
		log.Printf("[REPLAY] recording into run %s", recorder.RunID())
	}

	values, summary := replay.Replay(f, metrics.ForgettingMetrics(experience, stream), sink)

	fmt.Printf("%-55s  %8s  %8s\n", "Metric", "Value", "Position")
	for _, v := range values {
		fmt.Printf("%-55s  %8.4f  %8d\n", v.Name, v.Value, v.Position)
	}
	fmt.Printf("\n%d training steps, %d eval streams, %d experience evaluations, %d iterations, %d records\n",
		summary.TrainingSteps, summary.EvalStreams, summary.Experiences, summary.Iterations, summary.Records)

	if len(f.ExpectedValues) > 0 {
		if mismatches := verify(values, f.ExpectedValues); mismatches > 0 {
			fmt.Fprintf(os.Stderr, "%d expected-value mismatches\n", mismatches)
			return 1
		}
		fmt.Printf("all %d expected values matched\n", len(f.ExpectedValues))
	}
	return 0
}

// #endregion run

// #region verify

// verify compares emitted records against the fixture's expected list and
// reports the number of mismatches.
func verify(values []metrics.MetricValue, expected []replay.ExpectedValue) int {
	mismatches := 0
	if len(values) != len(expected) {
		fmt.Fprintf(os.Stderr, "expected %d records, got %d\n", len(expected), len(values))
		mismatches++
	}
	n := len(values)
	if len(expected) < n {
		n = len(expected)
	}
	for i := 0; i < n; i++ {
		if values[i].Name != expected[i].Name ||
			math.Abs(values[i].Value-expected[i].Value) > 1e-9 ||
			values[i].Position != expected[i].Position {
			fmt.Fprintf(os.Stderr, "record %d: expected {%s %.4f @%d}, got {%s %.4f @%d}\n",
				i, expected[i].Name, expected[i].Value, expected[i].Position,
				values[i].Name, values[i].Value, values[i].Position)
			mismatches++
		}
	}
	return mismatches
}

// #endregion verify
