// Package predictor turns a patient input into a risk label and display
// confidence using a loaded model artifact.
package predictor

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/Skufu/alzrisk/internal/features"
	"github.com/Skufu/alzrisk/internal/model"
	"github.com/Skufu/alzrisk/internal/patient"
)

var ErrInvalidProbability = errors.New("model returned an invalid probability")

// Observer receives one call per prediction attempt.
type Observer interface {
	ObservePrediction(label string, elapsed time.Duration)
	ObserveError(reason string)
}

type nopObserver struct{}

func (nopObserver) ObservePrediction(string, time.Duration) {}
func (nopObserver) ObserveError(string)                     {}

// Result is the outcome of one prediction.
type Result struct {
	Label          RiskLabel
	Class          int
	RawProbability float64
	Confidence     float64
	Features       features.Record
}

func (r Result) HighRisk() bool  { return r.Label == High }
func (r Result) Percent() string { return FormatPercent(r.Confidence) }
func (r Result) Message() string { return r.Label.Message() }

// Predictor is a read-only handle over a model artifact. It holds no mutable
// state and is safe for concurrent use.
type Predictor struct {
	artifact model.Artifact
	order    []string
	observer Observer
	logger   *slog.Logger
}

type Option func(*Predictor)

func WithObserver(o Observer) Option {
	return func(p *Predictor) { p.observer = o }
}

func WithLogger(l *slog.Logger) Option {
	return func(p *Predictor) { p.logger = l }
}

// New checks the artifact's feature ordering against the mapping once and
// returns features.ErrSchemaMismatch if they have drifted apart.
func New(artifact model.Artifact, opts ...Option) (*Predictor, error) {
	if artifact == nil {
		return nil, errors.New("predictor: nil artifact")
	}

	order := artifact.FeatureNames()
	if err := features.CheckSchema(order); err != nil {
		return nil, err
	}

	p := &Predictor{
		artifact: artifact,
		order:    order,
		observer: nopObserver{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// FeatureNames returns the artifact's declared ordering.
func (p *Predictor) FeatureNames() []string {
	out := make([]string, len(p.order))
	copy(out, p.order)
	return out
}

// Predict maps the input, invokes the artifact once for the class and once
// for the probability, and applies the display policy.
func (p *Predictor) Predict(in patient.Input) (Result, error) {
	start := time.Now()

	rec, err := features.Map(in).Align(p.order)
	if err != nil {
		p.observer.ObserveError("schema")
		return Result{}, err
	}
	x := rec.Values()

	class, err := p.artifact.Predict(x)
	if err != nil {
		p.observer.ObserveError("predict")
		return Result{}, fmt.Errorf("predict: %w", err)
	}
	proba, err := p.artifact.PredictProba(x)
	if err != nil {
		p.observer.ObserveError("predict_proba")
		return Result{}, fmt.Errorf("predict proba: %w", err)
	}

	prob := proba[1]
	if math.IsNaN(prob) || prob < 0 || prob > 1 {
		p.observer.ObserveError("probability")
		return Result{}, fmt.Errorf("%w: %v", ErrInvalidProbability, prob)
	}

	label, confidence := Assess(prob)
	elapsed := time.Since(start)
	p.observer.ObservePrediction(string(label), elapsed)
	p.logger.Debug("prediction complete",
		"label", label,
		"class", class,
		"raw_probability", prob,
		"confidence", confidence,
		"duration_ms", float64(elapsed.Microseconds())/1000.0,
	)

	return Result{
		Label:          label,
		Class:          class,
		RawProbability: prob,
		Confidence:     confidence,
		Features:       rec,
	}, nil
}
