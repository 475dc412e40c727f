package predictor

import (
	"errors"
	"math"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skufu/alzrisk/internal/features"
	"github.com/Skufu/alzrisk/internal/model"
	"github.com/Skufu/alzrisk/internal/patient"
)

type fakeArtifact struct {
	names      []string
	prob       float64
	class      int
	err        error
	probaErr   error
	predicted  [][]float64
	probaCalls int
}

func (f *fakeArtifact) FeatureNames() []string { return slices.Clone(f.names) }

func (f *fakeArtifact) Predict(x []float64) (int, error) {
	f.predicted = append(f.predicted, slices.Clone(x))
	return f.class, f.err
}

func (f *fakeArtifact) PredictProba(x []float64) ([2]float64, error) {
	f.probaCalls++
	return [2]float64{1 - f.prob, f.prob}, f.probaErr
}

type recordingObserver struct {
	labels  []string
	reasons []string
}

func (r *recordingObserver) ObservePrediction(label string, _ time.Duration) {
	r.labels = append(r.labels, label)
}

func (r *recordingObserver) ObserveError(reason string) { r.reasons = append(r.reasons, reason) }

func TestAssess(t *testing.T) {
	tests := []struct {
		p          float64
		label      RiskLabel
		confidence float64
	}{
		{p: 0.20, label: High, confidence: 0.60},
		{p: 1.0, label: High, confidence: 1.0},
		{p: 0.5, label: High, confidence: 0.75},
		{p: 0.0, label: Low, confidence: 0.0},
		{p: 0.199999, label: Low, confidence: 0.0999995},
		{p: 0.19999, label: Low, confidence: 0.099995},
	}

	for _, tt := range tests {
		label, confidence := Assess(tt.p)
		assert.Equal(t, tt.label, label, "p=%v", tt.p)
		assert.InDelta(t, tt.confidence, confidence, 1e-12, "p=%v", tt.p)
	}
}

func TestAssessBoundaryExact(t *testing.T) {
	label, _ := Assess(0.20)
	assert.Equal(t, High, label)

	label, _ = Assess(math.Nextafter(0.20, 0))
	assert.Equal(t, Low, label)
}

func TestAssessDisplayRanges(t *testing.T) {
	for p := 0.0; p <= 1.0; p += 0.001 {
		label, c := Assess(p)
		if label == High {
			assert.GreaterOrEqual(t, c, 0.60-1e-12)
			assert.LessOrEqual(t, c, 1.0)
		} else {
			assert.GreaterOrEqual(t, c, 0.0)
			assert.Less(t, c, 0.10)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "75.00%", FormatPercent(0.75))
	assert.Equal(t, "60.00%", FormatPercent(0.60))
	assert.Equal(t, "0.00%", FormatPercent(0))
	assert.Equal(t, "9.12%", FormatPercent(0.0912128))
}

func TestMessages(t *testing.T) {
	assert.Contains(t, High.Message(), "High Risk")
	assert.Contains(t, Low.Message(), "Low Risk")
}

func TestNewSchemaMismatch(t *testing.T) {
	_, err := New(&fakeArtifact{names: features.Names()[:31]})
	assert.ErrorIs(t, err, features.ErrSchemaMismatch)

	_, err = New(&fakeArtifact{names: append(features.Names(), "PatientID")})
	assert.ErrorIs(t, err, features.ErrSchemaMismatch)

	_, err = New(nil)
	assert.Error(t, err)
}

func TestPredictUsesArtifactOrder(t *testing.T) {
	order := features.Names()
	slices.Reverse(order)
	art := &fakeArtifact{names: order, prob: 0.5, class: 1}

	p, err := New(art)
	require.NoError(t, err)
	assert.Equal(t, order, p.FeatureNames())

	in := patient.Defaults()
	in.Age = 81
	in.Gender = patient.Female

	res, err := p.Predict(in)
	require.NoError(t, err)

	require.Len(t, art.predicted, 1)
	assert.Equal(t, 1, art.probaCalls)
	assert.Equal(t, order, res.Features.Names())
	assert.Equal(t, res.Features.Values(), art.predicted[0])

	x := art.predicted[0]
	assert.Equal(t, 81.0, x[slices.Index(order, features.Age)])
	assert.Equal(t, 0.0, x[slices.Index(order, features.Gender)])
}

func TestPredictResult(t *testing.T) {
	tests := []struct {
		name       string
		prob       float64
		label      RiskLabel
		confidence float64
		percent    string
	}{
		{name: "threshold", prob: 0.20, label: High, confidence: 0.60, percent: "60.00%"},
		{name: "certain", prob: 1.0, label: High, confidence: 1.0, percent: "100.00%"},
		{name: "low", prob: 0.1, label: Low, confidence: 0.05, percent: "5.00%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs := &recordingObserver{}
			p, err := New(&fakeArtifact{names: features.Names(), prob: tt.prob}, WithObserver(obs))
			require.NoError(t, err)

			res, err := p.Predict(patient.Defaults())
			require.NoError(t, err)
			assert.Equal(t, tt.label, res.Label)
			assert.Equal(t, tt.label == High, res.HighRisk())
			assert.InDelta(t, tt.prob, res.RawProbability, 1e-12)
			assert.InDelta(t, tt.confidence, res.Confidence, 1e-12)
			assert.Equal(t, tt.percent, res.Percent())
			assert.Equal(t, tt.label.Message(), res.Message())
			assert.Equal(t, []string{string(tt.label)}, obs.labels)
		})
	}
}

func TestPredictLabelIgnoresArtifactClass(t *testing.T) {
	p, err := New(&fakeArtifact{names: features.Names(), prob: 0.3, class: 0})
	require.NoError(t, err)

	res, err := p.Predict(patient.Defaults())
	require.NoError(t, err)
	assert.Equal(t, High, res.Label)
	assert.Equal(t, 0, res.Class)
}

func TestPredictErrors(t *testing.T) {
	boom := errors.New("boom")
	tests := []struct {
		name   string
		art    *fakeArtifact
		reason string
		is     error
	}{
		{name: "predict", art: &fakeArtifact{names: features.Names(), err: boom}, reason: "predict", is: boom},
		{name: "proba", art: &fakeArtifact{names: features.Names(), probaErr: boom}, reason: "predict_proba", is: boom},
		{name: "nan", art: &fakeArtifact{names: features.Names(), prob: math.NaN()}, reason: "probability", is: ErrInvalidProbability},
		{name: "above one", art: &fakeArtifact{names: features.Names(), prob: 1.5}, reason: "probability", is: ErrInvalidProbability},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs := &recordingObserver{}
			p, err := New(tt.art, WithObserver(obs))
			require.NoError(t, err)

			_, err = p.Predict(patient.Defaults())
			assert.ErrorIs(t, err, tt.is)
			assert.Equal(t, []string{tt.reason}, obs.reasons)
			assert.Empty(t, obs.labels)
		})
	}
}

func TestPredictWithCatBoostFixture(t *testing.T) {
	art, err := model.Load("../model/testdata/model.json")
	require.NoError(t, err)

	p, err := New(art)
	require.NoError(t, err)

	in := patient.Defaults()
	in.Ethnicity = patient.White
	in.EducationLevel = 2
	in.FamilyHistoryAlzheimers = patient.Yes
	in.FunctionalAssessment = 2
	in.DietQuality = 1

	res, err := p.Predict(in)
	require.NoError(t, err)

	// MMSE 25 and functional 2 fall in the -1.5 leaf; no memory complaints adds -0.5.
	want := 1 / (1 + math.Exp(2.0))
	assert.InDelta(t, want, res.RawProbability, 1e-12)
	assert.Equal(t, Low, res.Label)
	assert.InDelta(t, want*0.5, res.Confidence, 1e-12)
	assert.Equal(t, "5.96%", res.Percent())

	gender, _ := res.Features.Get(features.Gender)
	eth, _ := res.Features.Get(features.Ethnicity)
	fam, _ := res.Features.Get(features.FamilyHistoryAlzheimers)
	assert.Equal(t, 1.0, gender)
	assert.Equal(t, 2.0, eth)
	assert.Equal(t, 1.0, fam)
	assert.Equal(t, art.FeatureNames(), res.Features.Names())

	in.MMSE = 20
	in.FunctionalAssessment = 0
	in.MemoryComplaints = patient.Yes
	res, err = p.Predict(in)
	require.NoError(t, err)
	assert.Equal(t, High, res.Label)
	assert.Equal(t, 1, res.Class)
	assert.Equal(t, "94.04%", res.Percent())
}

func TestNewRejectsMismatchedFixture(t *testing.T) {
	art, err := model.Load("../model/testdata/model_missing_feature.json")
	require.NoError(t, err)

	_, err = New(art)
	assert.ErrorIs(t, err, features.ErrSchemaMismatch)
}
