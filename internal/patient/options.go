package patient

import "slices"

// Gender is the binary gender choice exposed by the form.
type Gender string

const (
	Male   Gender = "Male"
	Female Gender = "Female"
)

// Ethnicity is one of the five closed ethnicity labels.
type Ethnicity string

const (
	Asian    Ethnicity = "Asian"
	Black    Ethnicity = "Black"
	White    Ethnicity = "White"
	Hispanic Ethnicity = "Hispanic"
	Other    Ethnicity = "Other"
)

var ethnicities = []Ethnicity{Asian, Black, White, Hispanic, Other}

// Ethnicities returns the selectable labels in display order.
func Ethnicities() []Ethnicity { return slices.Clone(ethnicities) }

// YesNo is a binary answer. There is no third state.
type YesNo string

const (
	No  YesNo = "No"
	Yes YesNo = "Yes"
)

// Education is the ordinal education level, 0 (none) to 3 (highest).
type Education int

const (
	EducationNone Education = iota
	EducationHighSchool
	EducationBachelors
	EducationHighest
)

// Functional is the ordinal functional assessment code, 0 to 3.
type Functional int

const (
	FunctionalMin Functional = 0
	FunctionalMax Functional = 3
)

// Smoking is the smoking status code.
type Smoking int

const (
	SmokingNever Smoking = iota
	SmokingFormer
	SmokingCurrent
)

// Diet is the diet quality code, 0 (poor) to 2 (healthy).
type Diet int

const (
	DietPoor Diet = iota
	DietModerate
	DietHealthy
)

// Range is an inclusive numeric domain rendered as a slider. It mirrors the
// min and max binding tags on Input.
type Range struct {
	Min float64
	Max float64
}

var (
	AgeRange           = Range{Min: 40, Max: 100}
	BMIRange           = Range{Min: 10, Max: 50}
	SystolicRange      = Range{Min: 80, Max: 200}
	DiastolicRange     = Range{Min: 50, Max: 130}
	CholesterolRange   = Range{Min: 100, Max: 300}
	LDLRange           = Range{Min: 40, Max: 200}
	HDLRange           = Range{Min: 20, Max: 100}
	TriglyceridesRange = Range{Min: 50, Max: 300}
	MMSERange          = Range{Min: 0, Max: 30}
	SleepRange         = Range{Min: 1, Max: 10}
)
