package metrics

import "fmt"

// #region naming

// streamMetricName builds the identifier for a stream-level result:
// <MetricName>/<phase>_phase/<stream>_stream
func streamMetricName(metric fmt.Stringer, ctx EvalContext) string {
	return fmt.Sprintf("%s/%s_phase/%s_stream", metric, ctx.Phase, ctx.Stream)
}

// experienceMetricName builds the identifier for an experience-level result:
// <MetricName>/<phase>_phase/<stream>_stream/Exp<NNN>
func experienceMetricName(metric fmt.Stringer, ctx EvalContext) string {
	return fmt.Sprintf("%s/%s_phase/%s_stream/Exp%03d", metric, ctx.Phase, ctx.Stream, ctx.Experience)
}

// #endregion
