package loop

import (
	"math"
	"testing"

	"github.com/andrew-r96/avalanche/internal/metrics"
)

// recordingSink captures everything emitted through the loop.
type recordingSink struct {
	emitted []metrics.MetricValue
}

func (s *recordingSink) Emit(v metrics.MetricValue) error {
	s.emitted = append(s.emitted, v)
	return nil
}

// trainThenEval runs one train step followed by one full eval stream over the
// given experiences, each evaluated with a single batch.
func trainThenEval(l *Loop, trainExp int, batches map[int][2][]int, order []int) {
	l.BeforeTrainingExp(trainExp)
	l.BeforeEval()
	for _, exp := range order {
		b := batches[exp]
		l.BeforeEvalExp(exp)
		l.AfterEvalIteration(exp, b[0], b[1])
		l.AfterEvalExp(exp)
	}
	l.AfterEval()
}

func TestLoopEndToEndForgetting(t *testing.T) {
	l := NewLoop(metrics.ForgettingMetrics(true, true), "test")
	sink := &recordingSink{}
	l.SetSink(sink)

	allOnes := []int{1, 1, 1, 1, 1, 1, 1, 1, 1, 1}
	acc := func(tenths int) [2][]int {
		pred := make([]int, 10)
		for i := 0; i < tenths; i++ {
			pred[i] = 1
		}
		return [2][]int{pred, allOnes}
	}

	// Round 1: train exp 0, baseline accuracy 0.9.
	trainThenEval(l, 0, map[int][2][]int{0: acc(9)}, []int{0})
	// Round 2: train exp 1 (baseline 0.8); exp 0 drops to 0.7.
	trainThenEval(l, 1, map[int][2][]int{0: acc(7), 1: acc(8)}, []int{0, 1})
	// Round 3: train exp 2; exp 0 stays 0.7, exp 1 drops to 0.5.
	trainThenEval(l, 2, map[int][2][]int{0: acc(7), 1: acc(5), 2: acc(9)}, []int{0, 1, 2})

	values := l.Values()

	// Expected emissions:
	//   round 1: stream record only (exp 0 is the baseline pass)
	//   round 2: exp 0 record (0.2), stream record (0.2)
	//   round 3: exp 0 record (0.2), exp 1 record (0.3), stream record (0.25)
	if len(values) != 6 {
		t.Fatalf("expected 6 records, got %d: %v", len(values), values)
	}

	want := []struct {
		name  string
		value float64
	}{
		{"StreamForgetting/eval_phase/test_stream", 0},
		{"ExperienceForgetting/eval_phase/test_stream/Exp000", 0.2},
		{"StreamForgetting/eval_phase/test_stream", 0.2},
		{"ExperienceForgetting/eval_phase/test_stream/Exp000", 0.2},
		{"ExperienceForgetting/eval_phase/test_stream/Exp001", 0.3},
		{"StreamForgetting/eval_phase/test_stream", 0.25},
	}
	for i, w := range want {
		if values[i].Name != w.name {
			t.Errorf("record %d: expected name %q, got %q", i, w.name, values[i].Name)
		}
		if math.Abs(values[i].Value-w.value) > 1e-9 {
			t.Errorf("record %d (%s): expected %f, got %f", i, w.name, w.value, values[i].Value)
		}
	}

	if len(sink.emitted) != len(values) {
		t.Fatalf("sink saw %d records, loop collected %d", len(sink.emitted), len(values))
	}
}

func TestLoopPositionAdvancesPerIteration(t *testing.T) {
	l := NewLoop(metrics.ForgettingMetrics(true, false), "test")

	if l.Position() != 0 {
		t.Fatalf("expected initial position 0, got %d", l.Position())
	}

	l.BeforeTrainingExp(0)
	l.BeforeEval()
	l.BeforeEvalExp(0)
	l.AfterEvalIteration(0, []int{1}, []int{1})
	l.AfterEvalIteration(0, []int{1}, []int{1})
	l.AfterEvalExp(0)
	l.AfterEval()

	if l.Position() != 2 {
		t.Fatalf("expected position 2 after two iterations, got %d", l.Position())
	}

	// Second pass: the emitted record carries the position at emission time.
	l.BeforeTrainingExp(1)
	l.BeforeEval()
	l.BeforeEvalExp(0)
	l.AfterEvalIteration(0, []int{0}, []int{1})
	out := l.AfterEvalExp(0)
	if len(out) != 1 {
		t.Fatalf("expected 1 record, got %d", len(out))
	}
	if out[0].Position != 3 {
		t.Fatalf("expected position 3 on the record, got %d", out[0].Position)
	}
}

func TestLoopNoPluginsNoRecords(t *testing.T) {
	l := NewLoop(nil, "test")
	l.BeforeTrainingExp(0)
	l.BeforeEval()
	l.BeforeEvalExp(0)
	l.AfterEvalIteration(0, []int{1}, []int{1})
	if out := l.AfterEvalExp(0); out != nil {
		t.Fatalf("expected no records, got %v", out)
	}
	if out := l.AfterEval(); out != nil {
		t.Fatalf("expected no records, got %v", out)
	}
	if l.Values() != nil {
		t.Fatalf("expected no collected values, got %v", l.Values())
	}
}

// #region stream-name

func TestLoopStreamNameInRecords(t *testing.T) {
	l := NewLoop(metrics.ForgettingMetrics(false, true), "valid")
	l.BeforeTrainingExp(0)
	l.BeforeEval()
	out := l.AfterEval()
	if len(out) != 1 {
		t.Fatalf("expected 1 record, got %d", len(out))
	}
	if out[0].Name != "StreamForgetting/eval_phase/valid_stream" {
		t.Fatalf("unexpected name %q", out[0].Name)
	}
}

// #endregion stream-name
