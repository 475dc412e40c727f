package features

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skufu/alzrisk/internal/patient"
)

func TestMapEthnicityCodes(t *testing.T) {
	want := map[patient.Ethnicity]float64{
		patient.Asian:    0,
		patient.Black:    1,
		patient.White:    2,
		patient.Hispanic: 3,
		patient.Other:    4,
	}

	for _, e := range patient.Ethnicities() {
		in := patient.Defaults()
		in.Ethnicity = e

		got, ok := Map(in).Get(Ethnicity)
		require.True(t, ok)
		assert.Equal(t, want[e], got, "ethnicity %s", e)
	}
	assert.Len(t, patient.Ethnicities(), len(want))
}

func TestMapUnknownEthnicityPanics(t *testing.T) {
	in := patient.Defaults()
	in.Ethnicity = "Unlisted"
	assert.Panics(t, func() { Map(in) })
}

func TestMapGender(t *testing.T) {
	in := patient.Defaults()

	in.Gender = patient.Male
	v, _ := Map(in).Get(Gender)
	assert.Equal(t, 1.0, v)

	in.Gender = patient.Female
	v, _ = Map(in).Get(Gender)
	assert.Equal(t, 0.0, v)
}

func TestMapBinaryFields(t *testing.T) {
	binaries := map[string]func(*patient.Input, patient.YesNo){
		CardiovascularDisease:     func(in *patient.Input, y patient.YesNo) { in.CardiovascularDisease = y },
		Diabetes:                  func(in *patient.Input, y patient.YesNo) { in.Diabetes = y },
		Depression:                func(in *patient.Input, y patient.YesNo) { in.Depression = y },
		HeadInjury:                func(in *patient.Input, y patient.YesNo) { in.HeadInjury = y },
		Hypertension:              func(in *patient.Input, y patient.YesNo) { in.Hypertension = y },
		MemoryComplaints:          func(in *patient.Input, y patient.YesNo) { in.MemoryComplaints = y },
		BehavioralProblems:        func(in *patient.Input, y patient.YesNo) { in.BehavioralProblems = y },
		ADL:                       func(in *patient.Input, y patient.YesNo) { in.ADL = y },
		Confusion:                 func(in *patient.Input, y patient.YesNo) { in.Confusion = y },
		Disorientation:            func(in *patient.Input, y patient.YesNo) { in.Disorientation = y },
		PersonalityChanges:        func(in *patient.Input, y patient.YesNo) { in.PersonalityChanges = y },
		Forgetfulness:             func(in *patient.Input, y patient.YesNo) { in.Forgetfulness = y },
		DifficultyCompletingTasks: func(in *patient.Input, y patient.YesNo) { in.DifficultyCompletingTasks = y },
		AlcoholConsumption:        func(in *patient.Input, y patient.YesNo) { in.AlcoholConsumption = y },
		PhysicalActivity:          func(in *patient.Input, y patient.YesNo) { in.PhysicalActivity = y },
		FamilyHistoryAlzheimers:   func(in *patient.Input, y patient.YesNo) { in.FamilyHistoryAlzheimers = y },
	}

	for name, set := range binaries {
		t.Run(name, func(t *testing.T) {
			in := patient.Defaults()

			set(&in, patient.Yes)
			v, ok := Map(in).Get(name)
			require.True(t, ok)
			assert.Equal(t, 1.0, v)

			set(&in, patient.No)
			v, _ = Map(in).Get(name)
			assert.Equal(t, 0.0, v)
		})
	}
}

func TestMapScenario(t *testing.T) {
	in := patient.Defaults()
	in.Age = 65
	in.Gender = patient.Male
	in.Ethnicity = patient.White
	in.EducationLevel = 2
	in.BMI = 25.0
	in.FamilyHistoryAlzheimers = patient.Yes
	in.MMSE = 25
	in.FunctionalAssessment = 2
	in.Smoking = 0
	in.DietQuality = 1
	in.SleepQuality = 5
	in.SystolicBP = 120
	in.DiastolicBP = 80
	in.CholesterolTotal = 180
	in.CholesterolLDL = 100
	in.CholesterolHDL = 50
	in.CholesterolTriglycerides = 120

	rec := Map(in)
	want := map[string]float64{
		Age: 65, Gender: 1, Ethnicity: 2, EducationLevel: 2, BMI: 25,
		FamilyHistoryAlzheimers: 1, MMSE: 25, FunctionalAssessment: 2,
		Smoking: 0, DietQuality: 1, SleepQuality: 5, SystolicBP: 120,
		DiastolicBP: 80, CholesterolTotal: 180, CholesterolLDL: 100,
		CholesterolHDL: 50, CholesterolTriglycerides: 120,
	}

	require.Equal(t, 32, rec.Len())
	for _, f := range rec.Features() {
		if v, ok := want[f.Name]; ok {
			assert.Equal(t, v, f.Value, f.Name)
			continue
		}
		assert.Equal(t, 0.0, f.Value, "binary %s", f.Name)
	}
}

func TestMapNamesMatchRecord(t *testing.T) {
	assert.Equal(t, Names(), Map(patient.Defaults()).Names())
	require.NoError(t, CheckSchema(Names()))
}

func TestCheckSchema(t *testing.T) {
	reversed := Names()
	slices.Reverse(reversed)
	assert.NoError(t, CheckSchema(reversed))

	tests := []struct {
		name     string
		expected []string
	}{
		{name: "missing", expected: Names()[1:]},
		{name: "unexpected", expected: append(Names(), "PatientID")},
		{name: "duplicate", expected: append(Names(), Age)},
		{name: "renamed", expected: append(Names()[:31], "Race")},
		{name: "empty", expected: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, CheckSchema(tt.expected), ErrSchemaMismatch)
		})
	}
}

func TestAlign(t *testing.T) {
	order := Names()
	slices.Reverse(order)

	in := patient.Defaults()
	in.Age = 77
	rec := Map(in)

	aligned, err := rec.Align(order)
	require.NoError(t, err)
	assert.Equal(t, order, aligned.Names())
	assert.Equal(t, 77.0, aligned.Values()[slices.Index(order, Age)])

	for _, name := range order {
		a, _ := aligned.Get(name)
		b, _ := rec.Get(name)
		assert.Equal(t, b, a, name)
	}
}

func TestAlignMismatch(t *testing.T) {
	rec := Map(patient.Defaults())

	_, err := rec.Align(Names()[:10])
	assert.ErrorIs(t, err, ErrSchemaMismatch)

	other := Names()
	other[0] = "PatientID"
	_, err = rec.Align(other)
	assert.ErrorIs(t, err, ErrSchemaMismatch)

	dup := Names()
	dup[0] = dup[1]
	_, err = rec.Align(dup)
	assert.ErrorIs(t, err, ErrSchemaMismatch)
}
