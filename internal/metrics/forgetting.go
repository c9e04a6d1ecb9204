package metrics

// #region forgetting-tracker

// Forgetting tracks, per key, the first value recorded ("initial") and the
// most recent one ("last"). Forgetting for a key is initial - last and is
// defined only once the key has been recorded under both roles. Keys are
// opaque; experience indices in practice.
type Forgetting[K comparable] struct {
	initial map[K]float64
	last    map[K]float64
}

// NewForgetting creates an empty tracker.
func NewForgetting[K comparable]() *Forgetting[K] {
	return &Forgetting[K]{
		initial: make(map[K]float64),
		last:    make(map[K]float64),
	}
}

// UpdateInitial sets the initial value for k. Last write wins: re-recording
// an initial value rebases forgetting on the most recent training of k.
func (f *Forgetting[K]) UpdateInitial(k K, v float64) {
	f.initial[k] = v
}

// UpdateLast sets the last value for k, overwriting any previous one.
func (f *Forgetting[K]) UpdateLast(k K, v float64) {
	f.last[k] = v
}

// Update dispatches to UpdateInitial or UpdateLast based on the flag.
func (f *Forgetting[K]) Update(k K, v float64, initial bool) {
	if initial {
		f.UpdateInitial(k, v)
	} else {
		f.UpdateLast(k, v)
	}
}

// Result returns initial[k] - last[k]. The second return is false while k is
// missing from either map; that is the undefined state, not an error.
func (f *Forgetting[K]) Result(k K) (float64, bool) {
	first, ok := f.initial[k]
	if !ok {
		return 0, false
	}
	last, ok := f.last[k]
	if !ok {
		return 0, false
	}
	return first - last, true
}

// Results returns forgetting for every key present in both maps. Keys seen
// under only one role are silently excluded.
func (f *Forgetting[K]) Results() map[K]float64 {
	out := make(map[K]float64)
	for k, first := range f.initial {
		if last, ok := f.last[k]; ok {
			out[k] = first - last
		}
	}
	return out
}

// ResetLast clears all last values, preserving the initial baselines.
// To be used at the start of each evaluation stream.
func (f *Forgetting[K]) ResetLast() {
	f.last = make(map[K]float64)
}

// Reset clears both maps. This also discards the initial baselines.
func (f *Forgetting[K]) Reset() {
	f.initial = make(map[K]float64)
	f.last = make(map[K]float64)
}

// #endregion forgetting-tracker

// #region experience-forgetting

// ExperienceForgetting reports, per evaluated experience, the accuracy lost
// since that experience was last trained on. The evaluation pass that follows
// training on the same experience establishes its baseline and emits nothing;
// later passes record the last value and emit initial - last. Experiences
// never trained on stay undefined and never emit.
type ExperienceForgetting struct {
	forgetting *Forgetting[int]
	current    *Accuracy

	trainExp int
	evalExp  int
	trained  bool // at least one BeforeTrainingExp seen
}

// NewExperienceForgetting creates the per-experience forgetting metric.
func NewExperienceForgetting() *ExperienceForgetting {
	return &ExperienceForgetting{
		forgetting: NewForgetting[int](),
		current:    NewAccuracy(),
	}
}

// Reset discards all state, including the initial baselines.
func (m *ExperienceForgetting) Reset() {
	m.forgetting.Reset()
	m.current.Reset()
	m.trained = false
}

// Result returns the forgetting recorded for experience k, if defined.
func (m *ExperienceForgetting) Result(k int) (float64, bool) {
	return m.forgetting.Result(k)
}

// BeforeTrainingExp remembers the experience about to be trained.
func (m *ExperienceForgetting) BeforeTrainingExp(ctx EvalContext) {
	m.trainExp = ctx.Experience
	m.trained = true
}

// BeforeEval starts a new evaluation stream: last values are cleared, the
// initial baselines survive.
func (m *ExperienceForgetting) BeforeEval(ctx EvalContext) {
	m.forgetting.ResetLast()
}

// BeforeEvalExp resets the accuracy accumulator for the next experience.
func (m *ExperienceForgetting) BeforeEvalExp(ctx EvalContext) {
	m.current.Reset()
}

// AfterEvalIteration feeds one batch into the accuracy accumulator.
func (m *ExperienceForgetting) AfterEvalIteration(ctx EvalContext, predicted, targets []int) {
	m.evalExp = ctx.Experience
	m.current.Update(predicted, targets)
}

// AfterEvalExp records the accumulated accuracy as initial when this pass
// immediately follows training on the same experience, as last otherwise,
// then emits the experience's forgetting if defined.
func (m *ExperienceForgetting) AfterEvalExp(ctx EvalContext) []MetricValue {
	initial := m.trained && m.trainExp == m.evalExp
	m.forgetting.Update(m.evalExp, m.current.Result(), initial)

	v, ok := m.forgetting.Result(m.evalExp)
	if !ok {
		return nil
	}
	return []MetricValue{{
		Origin:   m.String(),
		Name:     experienceMetricName(m, ctx),
		Value:    v,
		Position: ctx.Position,
	}}
}

// AfterEval emits nothing; per-experience results go out at AfterEvalExp.
func (m *ExperienceForgetting) AfterEval(ctx EvalContext) []MetricValue {
	return nil
}

func (m *ExperienceForgetting) String() string {
	return "ExperienceForgetting"
}

// #endregion experience-forgetting

// #region stream-forgetting

// StreamForgetting reports the forgetting averaged over one evaluation
// stream. Per-experience values are tracked exactly as ExperienceForgetting
// does; each defined value is fed into a running mean with unit weight, and
// one record is emitted per stream. Undefined experiences are skipped, not
// counted as zero.
type StreamForgetting struct {
	forgetting *Forgetting[int]
	streamMean *Mean
	current    *Accuracy

	trainExp int
	evalExp  int
	trained  bool
}

// NewStreamForgetting creates the stream-averaged forgetting metric.
func NewStreamForgetting() *StreamForgetting {
	return &StreamForgetting{
		forgetting: NewForgetting[int](),
		streamMean: NewMean(),
		current:    NewAccuracy(),
	}
}

// Reset discards all state, including the initial baselines.
func (m *StreamForgetting) Reset() {
	m.forgetting.Reset()
	m.streamMean.Reset()
	m.current.Reset()
	m.trained = false
}

// ExpResult returns the forgetting recorded for experience k, if defined.
func (m *StreamForgetting) ExpResult(k int) (float64, bool) {
	return m.forgetting.Result(k)
}

// Result returns the current stream average.
func (m *StreamForgetting) Result() float64 {
	return m.streamMean.Result()
}

// BeforeTrainingExp remembers the experience about to be trained.
func (m *StreamForgetting) BeforeTrainingExp(ctx EvalContext) {
	m.trainExp = ctx.Experience
	m.trained = true
}

// BeforeEval clears the last values and the stream mean; the average is
// rebuilt from scratch every stream.
func (m *StreamForgetting) BeforeEval(ctx EvalContext) {
	m.forgetting.ResetLast()
	m.streamMean.Reset()
}

// BeforeEvalExp resets the accuracy accumulator for the next experience.
func (m *StreamForgetting) BeforeEvalExp(ctx EvalContext) {
	m.current.Reset()
}

// AfterEvalIteration feeds one batch into the accuracy accumulator.
func (m *StreamForgetting) AfterEvalIteration(ctx EvalContext, predicted, targets []int) {
	m.evalExp = ctx.Experience
	m.current.Update(predicted, targets)
}

// AfterEvalExp updates the tracker like ExperienceForgetting, then folds the
// experience's forgetting into the stream mean when defined. Emits nothing.
func (m *StreamForgetting) AfterEvalExp(ctx EvalContext) []MetricValue {
	initial := m.trained && m.trainExp == m.evalExp
	m.forgetting.Update(m.evalExp, m.current.Result(), initial)

	if v, ok := m.forgetting.Result(m.evalExp); ok {
		m.streamMean.Add(v, 1)
	}
	return nil
}

// AfterEval emits the stream average, exactly once per stream.
func (m *StreamForgetting) AfterEval(ctx EvalContext) []MetricValue {
	return []MetricValue{{
		Origin:   m.String(),
		Name:     streamMetricName(m, ctx),
		Value:    m.streamMean.Result(),
		Position: ctx.Position,
	}}
}

func (m *StreamForgetting) String() string {
	return "StreamForgetting"
}

// #endregion stream-forgetting

// #region selector

// ForgettingMetrics returns fresh plugins for the requested aggregation
// levels, experience-level first.
func ForgettingMetrics(experience, stream bool) []Plugin {
	var plugins []Plugin
	if experience {
		plugins = append(plugins, NewExperienceForgetting())
	}
	if stream {
		plugins = append(plugins, NewStreamForgetting())
	}
	return plugins
}

// #endregion selector
