package metrics

// #region phase

// Phase identifies which half of the training loop is running.
type Phase string

const (
	PhaseTrain Phase = "train"
	PhaseEval  Phase = "eval"
)

// #endregion

// #region metric-value

// MetricValue is a single scalar emitted by a plugin metric, ready for the
// reporting layer. Position is the monotonic x coordinate used for plotting.
type MetricValue struct {
	Origin   string // name of the producing metric, e.g. "StreamForgetting"
	Name     string // fully qualified metric identifier
	Value    float64
	Position int64
}

// #endregion

// #region eval-context

// EvalContext carries the loop state a hook needs: the current phase, the
// stream being evaluated, the experience in scope, and the plot position.
// The dispatch loop fills it per hook invocation.
type EvalContext struct {
	Phase      Phase
	Stream     string // e.g. "test"
	Experience int
	Position   int64
}

// #endregion

// #region plugin

// Plugin consumes training-loop lifecycle events. The driver guarantees the
// invocation order per evaluation cycle:
//
//	BeforeTrainingExp → [training] → BeforeEval →
//	{BeforeEvalExp → AfterEvalIteration* → AfterEvalExp}* → AfterEval
//
// Hooks never run concurrently on the same instance. Out-of-order invocation
// is not detected; it yields silently wrong aggregates, so the ordering
// contract sits with the caller.
type Plugin interface {
	// BeforeTrainingExp fires just before training starts on ctx.Experience.
	BeforeTrainingExp(ctx EvalContext)

	// BeforeEval fires once at the start of an evaluation stream.
	BeforeEval(ctx EvalContext)

	// BeforeEvalExp fires before evaluating ctx.Experience.
	BeforeEvalExp(ctx EvalContext)

	// AfterEvalIteration fires once per evaluated batch with the predicted
	// and target labels for that batch.
	AfterEvalIteration(ctx EvalContext, predicted, targets []int)

	// AfterEvalExp fires after an experience has been fully evaluated.
	// It may emit result records.
	AfterEvalExp(ctx EvalContext) []MetricValue

	// AfterEval fires once at the end of an evaluation stream.
	// It may emit result records.
	AfterEval(ctx EvalContext) []MetricValue
}

// #endregion
