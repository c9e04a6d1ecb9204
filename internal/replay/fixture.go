package replay

import (
	"encoding/json"
	"fmt"
	"os"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a recorded continual-learning
// run: an ordered list of training steps, each followed by one evaluation
// stream, plus the metric records the run is expected to emit.
type Fixture struct {
	Description    string          `json:"description"`
	Stream         string          `json:"stream"`
	Steps          []FixtureStep   `json:"steps"`
	ExpectedValues []ExpectedValue `json:"expected_values"`
}

// FixtureStep is one training experience and the evaluation stream that ran
// after it.
type FixtureStep struct {
	TrainExperience int                 `json:"train_experience"`
	Eval            []FixtureEvaluation `json:"eval"`
}

// FixtureEvaluation is the recorded evaluation of one experience.
type FixtureEvaluation struct {
	Experience int            `json:"experience"`
	Batches    []FixtureBatch `json:"batches"`
}

// FixtureBatch is one evaluated batch of predicted and target labels.
type FixtureBatch struct {
	Predicted []int `json:"predicted"`
	Targets   []int `json:"targets"`
}

// ExpectedValue captures one expected metric record for regression checks.
type ExpectedValue struct {
	Name     string  `json:"name"`
	Value    float64 `json:"value"`
	Position int64   `json:"position"`
}

// #endregion fixture-types

// #region fixture-loader

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	if f.Stream == "" {
		f.Stream = "test"
	}
	return &f, nil
}

// #endregion fixture-loader
