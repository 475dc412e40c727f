package predictor

import "fmt"

// HighRiskThreshold is the raw positive-class probability at and above which
// a submission is labelled high risk.
const HighRiskThreshold = 0.20

type RiskLabel string

const (
	Low  RiskLabel = "Low"
	High RiskLabel = "High"
)

const (
	highRiskMessage = "High Risk of Alzheimer's Detected"
	lowRiskMessage  = "Low Risk of Alzheimer's Detected"
)

// Assess applies the display policy to a raw probability. High risk maps
// [0.20, 1] onto [0.60, 1]; low risk maps [0, 0.20) onto [0, 0.10). The
// result is a display value, not a calibrated probability.
func Assess(p float64) (RiskLabel, float64) {
	if p >= HighRiskThreshold {
		return High, p*0.5 + 0.5
	}
	return Low, p * 0.5
}

// FormatPercent renders a display confidence as a percentage with two
// decimals, e.g. 0.75 -> "75.00%".
func FormatPercent(confidence float64) string {
	return fmt.Sprintf("%.2f%%", confidence*100)
}

func (l RiskLabel) Message() string {
	if l == High {
		return highRiskMessage
	}
	return lowRiskMessage
}
