package loop

// #region imports
import (
	"log"

	"github.com/andrew-r96/avalanche/internal/metrics"
)

// #endregion

// #region sink

// Sink receives every metric value the loop collects. The results store
// implements it; a nil sink keeps everything in memory only.
type Sink interface {
	Emit(v metrics.MetricValue) error
}

// #endregion

// #region loop-struct

// Loop is the top-level dispatcher between a training loop and its plugin
// metrics. It owns the monotonic plot position counter and fans every
// lifecycle event out to all plugins in registration order, in the fixed
// hook sequence the plugins rely on. Not safe for concurrent use; the
// surrounding training loop is strictly sequential.
type Loop struct {
	plugins  []metrics.Plugin
	sink     Sink
	stream   string
	position int64
	values   []metrics.MetricValue
}

// #endregion

// #region constructor

// NewLoop creates a dispatcher over the given plugins for one named
// evaluation stream (e.g. "test").
func NewLoop(plugins []metrics.Plugin, stream string) *Loop {
	return &Loop{
		plugins: plugins,
		stream:  stream,
	}
}

// SetSink attaches a sink for collected values. Pass nil to detach.
func (l *Loop) SetSink(sink Sink) {
	l.sink = sink
}

// #endregion

// #region accessors

// Values returns every metric value collected so far, in emission order.
func (l *Loop) Values() []metrics.MetricValue {
	return l.values
}

// Position returns the current plot position counter. It advances once per
// evaluation iteration.
func (l *Loop) Position() int64 {
	return l.position
}

// #endregion

// #region train-events

// BeforeTrainingExp announces that training is about to start on exp.
func (l *Loop) BeforeTrainingExp(exp int) {
	ctx := l.ctx(metrics.PhaseTrain, exp)
	for _, p := range l.plugins {
		p.BeforeTrainingExp(ctx)
	}
}

// #endregion

// #region eval-events

// BeforeEval announces the start of an evaluation stream.
func (l *Loop) BeforeEval() {
	ctx := l.ctx(metrics.PhaseEval, 0)
	for _, p := range l.plugins {
		p.BeforeEval(ctx)
	}
}

// BeforeEvalExp announces that exp is about to be evaluated.
func (l *Loop) BeforeEvalExp(exp int) {
	ctx := l.ctx(metrics.PhaseEval, exp)
	for _, p := range l.plugins {
		p.BeforeEvalExp(ctx)
	}
}

// AfterEvalIteration forwards one evaluated batch for exp and advances the
// position counter.
func (l *Loop) AfterEvalIteration(exp int, predicted, targets []int) {
	l.position++
	ctx := l.ctx(metrics.PhaseEval, exp)
	for _, p := range l.plugins {
		p.AfterEvalIteration(ctx, predicted, targets)
	}
}

// AfterEvalExp announces that exp has been fully evaluated and collects any
// records the plugins emit.
func (l *Loop) AfterEvalExp(exp int) []metrics.MetricValue {
	ctx := l.ctx(metrics.PhaseEval, exp)
	var out []metrics.MetricValue
	for _, p := range l.plugins {
		out = append(out, p.AfterEvalExp(ctx)...)
	}
	l.collect(out)
	return out
}

// AfterEval announces the end of the evaluation stream and collects any
// records the plugins emit.
func (l *Loop) AfterEval() []metrics.MetricValue {
	ctx := l.ctx(metrics.PhaseEval, 0)
	var out []metrics.MetricValue
	for _, p := range l.plugins {
		out = append(out, p.AfterEval(ctx)...)
	}
	l.collect(out)
	return out
}

// #endregion

// #region helpers

func (l *Loop) ctx(phase metrics.Phase, exp int) metrics.EvalContext {
	return metrics.EvalContext{
		Phase:      phase,
		Stream:     l.stream,
		Experience: exp,
		Position:   l.position,
	}
}

func (l *Loop) collect(values []metrics.MetricValue) {
	l.values = append(l.values, values...)
	if l.sink == nil {
		return
	}
	for _, v := range values {
		if err := l.sink.Emit(v); err != nil {
			log.Printf("[LOOP] failed to emit %s: %v", v.Name, err)
		}
	}
}

// #endregion
