package replay

import (
	"github.com/andrew-r96/avalanche/internal/loop"
	"github.com/andrew-r96/avalanche/internal/metrics"
)

// #region types

// Summary provides aggregate stats from a replay run.
type Summary struct {
	TrainingSteps int
	EvalStreams   int
	Experiences   int // experience evaluations across all streams
	Iterations    int // evaluated batches across all streams
	Records       int // metric values emitted
}

// #endregion types

// #region replay

// Replay drives a recorded run through the given plugins in the fixed
// lifecycle order, one evaluation stream per training step. Emitted records
// are returned in emission order and forwarded to sink when non-nil.
func Replay(f *Fixture, plugins []metrics.Plugin, sink loop.Sink) ([]metrics.MetricValue, Summary) {
	l := loop.NewLoop(plugins, f.Stream)
	l.SetSink(sink)

	s := Summary{TrainingSteps: len(f.Steps)}
	for _, step := range f.Steps {
		l.BeforeTrainingExp(step.TrainExperience)

		l.BeforeEval()
		s.EvalStreams++
		for _, ev := range step.Eval {
			l.BeforeEvalExp(ev.Experience)
			for _, b := range ev.Batches {
				l.AfterEvalIteration(ev.Experience, b.Predicted, b.Targets)
				s.Iterations++
			}
			l.AfterEvalExp(ev.Experience)
			s.Experiences++
		}
		l.AfterEval()
	}

	values := l.Values()
	s.Records = len(values)
	return values, s
}

// #endregion replay
