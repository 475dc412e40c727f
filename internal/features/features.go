// Package features maps a patient input onto the numeric feature record the
// classifier consumes.
package features

import (
	"errors"
	"fmt"
	"slices"

	"github.com/Skufu/alzrisk/internal/patient"
)

// ErrSchemaMismatch means the mapping and the model artifact disagree on the
// feature set. It is a configuration error and is never user recoverable.
var ErrSchemaMismatch = errors.New("feature schema mismatch")

const (
	EducationLevel            = "EducationLevel"
	BMI                       = "BMI"
	Smoking                   = "Smoking"
	AlcoholConsumption        = "AlcoholConsumption"
	PhysicalActivity          = "PhysicalActivity"
	DietQuality               = "DietQuality"
	SleepQuality              = "SleepQuality"
	FamilyHistoryAlzheimers   = "FamilyHistoryAlzheimers"
	CardiovascularDisease     = "CardiovascularDisease"
	Diabetes                  = "Diabetes"
	Depression                = "Depression"
	HeadInjury                = "HeadInjury"
	Hypertension              = "Hypertension"
	SystolicBP                = "SystolicBP"
	DiastolicBP               = "DiastolicBP"
	CholesterolTotal          = "CholesterolTotal"
	CholesterolLDL            = "CholesterolLDL"
	CholesterolHDL            = "CholesterolHDL"
	CholesterolTriglycerides  = "CholesterolTriglycerides"
	MMSE                      = "MMSE"
	FunctionalAssessment      = "FunctionalAssessment"
	MemoryComplaints          = "MemoryComplaints"
	BehavioralProblems        = "BehavioralProblems"
	ADL                       = "ADL"
	Confusion                 = "Confusion"
	Disorientation            = "Disorientation"
	PersonalityChanges        = "PersonalityChanges"
	DifficultyCompletingTasks = "DifficultyCompletingTasks"
	Forgetfulness             = "Forgetfulness"
	Age                       = "Age"
	Gender                    = "Gender"
	Ethnicity                 = "Ethnicity"
)

var names = []string{
	EducationLevel, BMI, Smoking, AlcoholConsumption, PhysicalActivity,
	DietQuality, SleepQuality, FamilyHistoryAlzheimers, CardiovascularDisease,
	Diabetes, Depression, HeadInjury, Hypertension, SystolicBP, DiastolicBP,
	CholesterolTotal, CholesterolLDL, CholesterolHDL, CholesterolTriglycerides,
	MMSE, FunctionalAssessment, MemoryComplaints, BehavioralProblems, ADL,
	Confusion, Disorientation, PersonalityChanges, DifficultyCompletingTasks,
	Forgetfulness, Age, Gender, Ethnicity,
}

// ethnicityCodes is the fixed ordinal assignment the model was trained on.
var ethnicityCodes = map[patient.Ethnicity]float64{
	patient.Asian:    0,
	patient.Black:    1,
	patient.White:    2,
	patient.Hispanic: 3,
	patient.Other:    4,
}

// Names returns the feature names produced by Map, in mapping order.
func Names() []string { return slices.Clone(names) }

// Map converts a validated input into its feature record. It panics on an
// ethnicity outside the closed table, which validation rules out.
func Map(in patient.Input) Record {
	return newRecord([]Feature{
		{EducationLevel, float64(in.EducationLevel)},
		{BMI, in.BMI},
		{Smoking, float64(in.Smoking)},
		{AlcoholConsumption, binary(in.AlcoholConsumption)},
		{PhysicalActivity, binary(in.PhysicalActivity)},
		{DietQuality, float64(in.DietQuality)},
		{SleepQuality, float64(in.SleepQuality)},
		{FamilyHistoryAlzheimers, binary(in.FamilyHistoryAlzheimers)},
		{CardiovascularDisease, binary(in.CardiovascularDisease)},
		{Diabetes, binary(in.Diabetes)},
		{Depression, binary(in.Depression)},
		{HeadInjury, binary(in.HeadInjury)},
		{Hypertension, binary(in.Hypertension)},
		{SystolicBP, float64(in.SystolicBP)},
		{DiastolicBP, float64(in.DiastolicBP)},
		{CholesterolTotal, float64(in.CholesterolTotal)},
		{CholesterolLDL, float64(in.CholesterolLDL)},
		{CholesterolHDL, float64(in.CholesterolHDL)},
		{CholesterolTriglycerides, float64(in.CholesterolTriglycerides)},
		{MMSE, float64(in.MMSE)},
		{FunctionalAssessment, float64(in.FunctionalAssessment)},
		{MemoryComplaints, binary(in.MemoryComplaints)},
		{BehavioralProblems, binary(in.BehavioralProblems)},
		{ADL, binary(in.ADL)},
		{Confusion, binary(in.Confusion)},
		{Disorientation, binary(in.Disorientation)},
		{PersonalityChanges, binary(in.PersonalityChanges)},
		{DifficultyCompletingTasks, binary(in.DifficultyCompletingTasks)},
		{Forgetfulness, binary(in.Forgetfulness)},
		{Age, float64(in.Age)},
		{Gender, gender(in.Gender)},
		{Ethnicity, ethnicity(in.Ethnicity)},
	})
}

func binary(y patient.YesNo) float64 {
	if y == patient.Yes {
		return 1
	}
	return 0
}

func gender(g patient.Gender) float64 {
	if g == patient.Male {
		return 1
	}
	return 0
}

func ethnicity(e patient.Ethnicity) float64 {
	code, ok := ethnicityCodes[e]
	if !ok {
		panic(fmt.Sprintf("features: unmapped ethnicity %q", e))
	}
	return code
}

// CheckSchema verifies that expected holds exactly the names produced by Map.
// Order may differ; duplicates, missing or extra names are a mismatch.
func CheckSchema(expected []string) error {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}

	var missing, unexpected, duplicate []string
	seen := make(map[string]bool, len(expected))
	for _, n := range expected {
		if seen[n] {
			duplicate = append(duplicate, n)
			continue
		}
		seen[n] = true
		if !want[n] {
			unexpected = append(unexpected, n)
		}
	}
	for _, n := range names {
		if !seen[n] {
			missing = append(missing, n)
		}
	}

	if len(missing) == 0 && len(unexpected) == 0 && len(duplicate) == 0 {
		return nil
	}
	slices.Sort(missing)
	slices.Sort(unexpected)
	slices.Sort(duplicate)
	return fmt.Errorf("%w: missing %v, unexpected %v, duplicate %v",
		ErrSchemaMismatch, missing, unexpected, duplicate)
}
