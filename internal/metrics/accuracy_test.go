package metrics

import (
	"math"
	"testing"
)

// #region mean-tests

func TestMeanEmptyReturnsZero(t *testing.T) {
	m := NewMean()
	if m.Result() != 0 {
		t.Fatalf("expected 0 for empty mean, got %f", m.Result())
	}
	if m.Weight() != 0 {
		t.Fatalf("expected 0 weight, got %f", m.Weight())
	}
}

func TestMeanWeightedAverage(t *testing.T) {
	m := NewMean()
	m.Add(1.0, 1)
	m.Add(0.0, 3)
	if math.Abs(m.Result()-0.25) > 1e-9 {
		t.Fatalf("expected 0.25, got %f", m.Result())
	}
}

func TestMeanIgnoresNonPositiveWeight(t *testing.T) {
	m := NewMean()
	m.Add(5.0, 0)
	m.Add(5.0, -1)
	if m.Weight() != 0 {
		t.Fatalf("expected weight 0, got %f", m.Weight())
	}
}

func TestMeanReset(t *testing.T) {
	m := NewMean()
	m.Add(0.7, 2)
	m.Reset()
	if m.Result() != 0 || m.Weight() != 0 {
		t.Fatalf("expected empty mean after reset, got result=%f weight=%f", m.Result(), m.Weight())
	}
}

// #endregion mean-tests

// #region accuracy-tests

func TestAccuracySingleBatch(t *testing.T) {
	a := NewAccuracy()
	a.Update([]int{1, 2, 3, 4}, []int{1, 2, 0, 0})
	if math.Abs(a.Result()-0.5) > 1e-9 {
		t.Fatalf("expected 0.5, got %f", a.Result())
	}
}

func TestAccuracyWeightedByBatchSize(t *testing.T) {
	a := NewAccuracy()
	// 1/1 correct, then 0/3 correct
	a.Update([]int{1}, []int{1})
	a.Update([]int{0, 0, 0}, []int{1, 1, 1})
	if math.Abs(a.Result()-0.25) > 1e-9 {
		t.Fatalf("expected 0.25 over 4 samples, got %f", a.Result())
	}
}

func TestAccuracyIgnoresMismatchedBatch(t *testing.T) {
	a := NewAccuracy()
	a.Update([]int{1, 1}, []int{1})
	a.Update(nil, nil)
	if a.Result() != 0 {
		t.Fatalf("expected mismatched and empty batches to contribute nothing, got %f", a.Result())
	}
}

func TestAccuracyReset(t *testing.T) {
	a := NewAccuracy()
	a.Update([]int{1}, []int{1})
	a.Reset()
	if a.Result() != 0 {
		t.Fatalf("expected 0 after reset, got %f", a.Result())
	}
}

// #endregion accuracy-tests
