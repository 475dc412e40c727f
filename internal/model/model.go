// Package model loads the pre-trained classifier artifact and evaluates it.
//
// The artifact is read once at startup and is immutable afterwards, so a
// single value may be shared by any number of concurrent requests.
package model

import (
	"errors"
	"fmt"
)

var ErrInvalidArtifact = errors.New("invalid model artifact")

// Artifact is the contract the predictor relies on. FeatureNames is the
// ordering x must follow for Predict and PredictProba.
type Artifact interface {
	FeatureNames() []string
	Predict(x []float64) (int, error)
	PredictProba(x []float64) ([2]float64, error)
}

func checkWidth(x []float64, want int) error {
	if len(x) != want {
		return fmt.Errorf("model: got %d features, want %d", len(x), want)
	}
	return nil
}
