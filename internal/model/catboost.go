package model

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"sort"
)

// CatBoost evaluates a binary CatBoost classifier exported with
// save_model(path, format="json"). Only float features are supported.
type CatBoost struct {
	names []string
	trees []obliviousTree
	scale float64
	bias  float64
}

type obliviousTree struct {
	splits []split
	leaves []float64
}

type split struct {
	feature int // position in names
	border  float64
}

type catboostFile struct {
	FeaturesInfo struct {
		FloatFeatures []struct {
			FeatureIndex     int    `json:"feature_index"`
			FlatFeatureIndex int    `json:"flat_feature_index"`
			FeatureID        string `json:"feature_id"`
		} `json:"float_features"`
		CategoricalFeatures []json.RawMessage `json:"categorical_features"`
	} `json:"features_info"`
	ObliviousTrees []struct {
		LeafValues []float64 `json:"leaf_values"`
		Splits     []struct {
			Border            float64 `json:"border"`
			FloatFeatureIndex int     `json:"float_feature_index"`
			SplitType         string  `json:"split_type"`
		} `json:"splits"`
	} `json:"oblivious_trees"`
	ScaleAndBias json.RawMessage `json:"scale_and_bias"`
}

// Load reads a CatBoost JSON artifact from path.
func Load(path string) (*CatBoost, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open model: %w", err)
	}
	defer f.Close()

	m, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("load model %s: %w", path, err)
	}
	return m, nil
}

// Decode parses a CatBoost JSON artifact.
func Decode(r io.Reader) (*CatBoost, error) {
	var raw catboostFile
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArtifact, err)
	}
	if len(raw.FeaturesInfo.CategoricalFeatures) > 0 {
		return nil, fmt.Errorf("%w: categorical features are not supported", ErrInvalidArtifact)
	}

	floats := raw.FeaturesInfo.FloatFeatures
	if len(floats) == 0 {
		return nil, fmt.Errorf("%w: no features declared", ErrInvalidArtifact)
	}

	sort.SliceStable(floats, func(i, j int) bool {
		return floats[i].FlatFeatureIndex < floats[j].FlatFeatureIndex
	})

	m := &CatBoost{names: make([]string, 0, len(floats))}
	position := make(map[int]int, len(floats))
	for i, ff := range floats {
		if ff.FeatureID == "" {
			return nil, fmt.Errorf("%w: feature %d has no id", ErrInvalidArtifact, ff.FlatFeatureIndex)
		}
		if slices.Contains(m.names, ff.FeatureID) {
			return nil, fmt.Errorf("%w: duplicate feature %q", ErrInvalidArtifact, ff.FeatureID)
		}
		if _, dup := position[ff.FeatureIndex]; dup {
			return nil, fmt.Errorf("%w: duplicate feature index %d", ErrInvalidArtifact, ff.FeatureIndex)
		}
		position[ff.FeatureIndex] = i
		m.names = append(m.names, ff.FeatureID)
	}

	if len(raw.ObliviousTrees) == 0 {
		return nil, fmt.Errorf("%w: no trees", ErrInvalidArtifact)
	}
	for ti, t := range raw.ObliviousTrees {
		if want := 1 << len(t.Splits); len(t.LeafValues) != want {
			return nil, fmt.Errorf("%w: tree %d has %d leaves, want %d",
				ErrInvalidArtifact, ti, len(t.LeafValues), want)
		}
		tree := obliviousTree{leaves: t.LeafValues, splits: make([]split, 0, len(t.Splits))}
		for _, s := range t.Splits {
			if s.SplitType != "" && s.SplitType != "FloatFeature" {
				return nil, fmt.Errorf("%w: tree %d: unsupported split type %q",
					ErrInvalidArtifact, ti, s.SplitType)
			}
			pos, ok := position[s.FloatFeatureIndex]
			if !ok {
				return nil, fmt.Errorf("%w: tree %d references unknown feature %d",
					ErrInvalidArtifact, ti, s.FloatFeatureIndex)
			}
			tree.splits = append(tree.splits, split{feature: pos, border: s.Border})
		}
		m.trees = append(m.trees, tree)
	}

	scale, bias, err := parseScaleAndBias(raw.ScaleAndBias)
	if err != nil {
		return nil, err
	}
	m.scale, m.bias = scale, bias

	return m, nil
}

// parseScaleAndBias accepts both [scale, bias] and [scale, [bias]].
func parseScaleAndBias(raw json.RawMessage) (float64, float64, error) {
	if len(raw) == 0 {
		return 1, 0, nil
	}

	var pair []json.RawMessage
	if err := json.Unmarshal(raw, &pair); err != nil || len(pair) != 2 {
		return 0, 0, fmt.Errorf("%w: malformed scale_and_bias", ErrInvalidArtifact)
	}

	var scale float64
	if err := json.Unmarshal(pair[0], &scale); err != nil {
		return 0, 0, fmt.Errorf("%w: malformed scale: %v", ErrInvalidArtifact, err)
	}

	var bias float64
	if err := json.Unmarshal(pair[1], &bias); err == nil {
		return scale, bias, nil
	}
	var biases []float64
	if err := json.Unmarshal(pair[1], &biases); err != nil || len(biases) != 1 {
		return 0, 0, fmt.Errorf("%w: expected a single bias for a binary classifier", ErrInvalidArtifact)
	}
	return scale, biases[0], nil
}

func (m *CatBoost) FeatureNames() []string { return slices.Clone(m.names) }

// RawScore is the log-odds of the positive class.
func (m *CatBoost) RawScore(x []float64) (float64, error) {
	if err := checkWidth(x, len(m.names)); err != nil {
		return 0, err
	}

	var sum float64
	for _, t := range m.trees {
		idx := 0
		for depth, s := range t.splits {
			if x[s.feature] > s.border {
				idx |= 1 << depth
			}
		}
		sum += t.leaves[idx]
	}
	return m.scale*sum + m.bias, nil
}

func (m *CatBoost) PredictProba(x []float64) ([2]float64, error) {
	raw, err := m.RawScore(x)
	if err != nil {
		return [2]float64{}, err
	}
	p := 1 / (1 + math.Exp(-raw))
	return [2]float64{1 - p, p}, nil
}

// Predict returns 1 when the raw score is positive.
func (m *CatBoost) Predict(x []float64) (int, error) {
	raw, err := m.RawScore(x)
	if err != nil {
		return 0, err
	}
	if raw > 0 {
		return 1, nil
	}
	return 0, nil
}
