package metrics

// #region mean

// Mean is a weighted running mean over scalar samples.
type Mean struct {
	summed float64
	weight float64
}

// NewMean creates an empty running mean.
func NewMean() *Mean {
	return &Mean{}
}

// Add accumulates one sample with the given weight. Non-positive weights are
// ignored.
func (m *Mean) Add(value, weight float64) {
	if weight <= 0 {
		return
	}
	m.summed += value * weight
	m.weight += weight
}

// Result returns the weighted mean of the accumulated samples, or 0 when
// nothing has been added.
func (m *Mean) Result() float64 {
	if m.weight == 0 {
		return 0
	}
	return m.summed / m.weight
}

// Weight returns the total accumulated weight.
func (m *Mean) Weight() float64 {
	return m.weight
}

// Reset discards all accumulated samples.
func (m *Mean) Reset() {
	m.summed = 0
	m.weight = 0
}

// #endregion

// #region accuracy

// Accuracy is a running accuracy over batches of predicted and target labels,
// weighted by batch size.
type Accuracy struct {
	mean Mean
}

// NewAccuracy creates an empty accuracy accumulator.
func NewAccuracy() *Accuracy {
	return &Accuracy{}
}

// Update accumulates one batch. Both slices must have the same length; a
// mismatched or empty batch contributes nothing.
func (a *Accuracy) Update(predicted, targets []int) {
	if len(predicted) != len(targets) || len(predicted) == 0 {
		return
	}
	correct := 0
	for i := range predicted {
		if predicted[i] == targets[i] {
			correct++
		}
	}
	a.mean.Add(float64(correct)/float64(len(predicted)), float64(len(predicted)))
}

// Result returns the running accuracy in [0, 1], or 0 before any update.
func (a *Accuracy) Result() float64 {
	return a.mean.Result()
}

// Reset discards all accumulated batches.
func (a *Accuracy) Reset() {
	a.mean.Reset()
}

// #endregion
