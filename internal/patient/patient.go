// Package patient holds the raw form input collected for one risk prediction
// together with the closed domains every field is constrained to.
package patient

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrOutOfRange    = errors.New("value out of range")
	ErrUnknownOption = errors.New("unknown option")
)

var (
	validate  = newValidator()
	formNames = fieldFormNames()
)

// newValidator reads the same tag gin binding does.
func newValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	return v
}

func fieldFormNames() map[string]string {
	t := reflect.TypeOf(Input{})
	names := make(map[string]string, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		names[f.Name] = f.Tag.Get("form")
	}
	return names
}

// Input is one submission of the form. It is created per request and
// discarded once the feature record has been derived. The binding tags hold
// the closed domain of every field and are enforced by gin binding and
// Validate alike.
type Input struct {
	Age            int       `json:"age" form:"age" binding:"min=40,max=100"`
	Gender         Gender    `json:"gender" form:"gender" binding:"oneof=Male Female"`
	Ethnicity      Ethnicity `json:"ethnicity" form:"ethnicity" binding:"oneof=Asian Black White Hispanic Other"`
	EducationLevel Education `json:"educationLevel" form:"educationLevel" binding:"oneof=0 1 2 3"`
	BMI            float64   `json:"bmi" form:"bmi" binding:"min=10,max=50"`

	CardiovascularDisease YesNo `json:"cardiovascularDisease" form:"cardiovascularDisease" binding:"oneof=No Yes"`
	Diabetes              YesNo `json:"diabetes" form:"diabetes" binding:"oneof=No Yes"`
	Depression            YesNo `json:"depression" form:"depression" binding:"oneof=No Yes"`
	HeadInjury            YesNo `json:"headInjury" form:"headInjury" binding:"oneof=No Yes"`
	Hypertension          YesNo `json:"hypertension" form:"hypertension" binding:"oneof=No Yes"`
	SystolicBP            int   `json:"systolicBP" form:"systolicBP" binding:"min=80,max=200"`
	DiastolicBP           int   `json:"diastolicBP" form:"diastolicBP" binding:"min=50,max=130"`

	CholesterolTotal         int `json:"cholesterolTotal" form:"cholesterolTotal" binding:"min=100,max=300"`
	CholesterolLDL           int `json:"cholesterolLDL" form:"cholesterolLDL" binding:"min=40,max=200"`
	CholesterolHDL           int `json:"cholesterolHDL" form:"cholesterolHDL" binding:"min=20,max=100"`
	CholesterolTriglycerides int `json:"cholesterolTriglycerides" form:"cholesterolTriglycerides" binding:"min=50,max=300"`

	MMSE                      int        `json:"mmse" form:"mmse" binding:"min=0,max=30"`
	FunctionalAssessment      Functional `json:"functionalAssessment" form:"functionalAssessment" binding:"oneof=0 1 2 3"`
	MemoryComplaints          YesNo      `json:"memoryComplaints" form:"memoryComplaints" binding:"oneof=No Yes"`
	BehavioralProblems        YesNo      `json:"behavioralProblems" form:"behavioralProblems" binding:"oneof=No Yes"`
	ADL                       YesNo      `json:"adl" form:"adl" binding:"oneof=No Yes"`
	Confusion                 YesNo      `json:"confusion" form:"confusion" binding:"oneof=No Yes"`
	Disorientation            YesNo      `json:"disorientation" form:"disorientation" binding:"oneof=No Yes"`
	PersonalityChanges        YesNo      `json:"personalityChanges" form:"personalityChanges" binding:"oneof=No Yes"`
	Forgetfulness             YesNo      `json:"forgetfulness" form:"forgetfulness" binding:"oneof=No Yes"`
	DifficultyCompletingTasks YesNo      `json:"difficultyCompletingTasks" form:"difficultyCompletingTasks" binding:"oneof=No Yes"`

	Smoking                 Smoking `json:"smoking" form:"smoking" binding:"oneof=0 1 2"`
	AlcoholConsumption      YesNo   `json:"alcoholConsumption" form:"alcoholConsumption" binding:"oneof=No Yes"`
	PhysicalActivity        YesNo   `json:"physicalActivity" form:"physicalActivity" binding:"oneof=No Yes"`
	DietQuality             Diet    `json:"dietQuality" form:"dietQuality" binding:"oneof=0 1 2"`
	SleepQuality            int     `json:"sleepQuality" form:"sleepQuality" binding:"min=1,max=10"`
	FamilyHistoryAlzheimers YesNo   `json:"familyHistoryAlzheimers" form:"familyHistoryAlzheimers" binding:"oneof=No Yes"`
}

// Defaults returns the values shown before the user submits the form.
func Defaults() Input {
	return Input{
		Age:                       65,
		Gender:                    Male,
		Ethnicity:                 Asian,
		EducationLevel:            EducationNone,
		BMI:                       25.0,
		CardiovascularDisease:     No,
		Diabetes:                  No,
		Depression:                No,
		HeadInjury:                No,
		Hypertension:              No,
		SystolicBP:                120,
		DiastolicBP:               80,
		CholesterolTotal:          180,
		CholesterolLDL:            100,
		CholesterolHDL:            50,
		CholesterolTriglycerides:  120,
		MMSE:                      25,
		FunctionalAssessment:      FunctionalMin,
		MemoryComplaints:          No,
		BehavioralProblems:        No,
		ADL:                       No,
		Confusion:                 No,
		Disorientation:            No,
		PersonalityChanges:        No,
		Forgetfulness:             No,
		DifficultyCompletingTasks: No,
		Smoking:                   SmokingNever,
		AlcoholConsumption:        No,
		PhysicalActivity:          No,
		DietQuality:               DietPoor,
		SleepQuality:              5,
		FamilyHistoryAlzheimers:   No,
	}
}

// FieldError reports a single field outside its domain.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v (got %q)", e.Field, e.Err, e.Value)
}

func (e *FieldError) Unwrap() error { return e.Err }

// ValidationErrors collects every field that failed validation.
type ValidationErrors []*FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, e := range v {
		parts = append(parts, e.Error())
	}
	return strings.Join(parts, "; ")
}

func (v ValidationErrors) Unwrap() []error {
	errs := make([]error, 0, len(v))
	for _, e := range v {
		errs = append(errs, e)
	}
	return errs
}

// Validate checks every field against the domain in its binding tag. The
// rendered form cannot produce a failing input; requests built outside the
// form can.
func (in Input) Validate() error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return FromValidator(verrs)
	}
	return err
}

// FromValidator converts validator errors raised on Input, by Validate or by
// gin binding, into field errors keyed by form name.
func FromValidator(verrs validator.ValidationErrors) ValidationErrors {
	out := make(ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		name, ok := formNames[fe.StructField()]
		if !ok {
			name = fe.Field()
		}
		var cause error
		switch fe.Tag() {
		case "min", "max":
			cause = fmt.Errorf("%w (%s %s)", ErrOutOfRange, fe.Tag(), fe.Param())
		case "oneof":
			cause = ErrUnknownOption
		default:
			cause = fmt.Errorf("failed %s", fe.Tag())
		}
		out = append(out, &FieldError{Field: name, Value: fmt.Sprint(fe.Value()), Err: cause})
	}
	return out
}

// Values returns the form representation of every field keyed by its form
// name, used to re-populate controls after a submission.
func (in Input) Values() map[string]string {
	itoa := strconv.Itoa
	return map[string]string{
		"age":                       itoa(in.Age),
		"gender":                    string(in.Gender),
		"ethnicity":                 string(in.Ethnicity),
		"educationLevel":            itoa(int(in.EducationLevel)),
		"bmi":                       strconv.FormatFloat(in.BMI, 'f', -1, 64),
		"cardiovascularDisease":     string(in.CardiovascularDisease),
		"diabetes":                  string(in.Diabetes),
		"depression":                string(in.Depression),
		"headInjury":                string(in.HeadInjury),
		"hypertension":              string(in.Hypertension),
		"systolicBP":                itoa(in.SystolicBP),
		"diastolicBP":               itoa(in.DiastolicBP),
		"cholesterolTotal":          itoa(in.CholesterolTotal),
		"cholesterolLDL":            itoa(in.CholesterolLDL),
		"cholesterolHDL":            itoa(in.CholesterolHDL),
		"cholesterolTriglycerides":  itoa(in.CholesterolTriglycerides),
		"mmse":                      itoa(in.MMSE),
		"functionalAssessment":      itoa(int(in.FunctionalAssessment)),
		"memoryComplaints":          string(in.MemoryComplaints),
		"behavioralProblems":        string(in.BehavioralProblems),
		"adl":                       string(in.ADL),
		"confusion":                 string(in.Confusion),
		"disorientation":            string(in.Disorientation),
		"personalityChanges":        string(in.PersonalityChanges),
		"forgetfulness":             string(in.Forgetfulness),
		"difficultyCompletingTasks": string(in.DifficultyCompletingTasks),
		"smoking":                   itoa(int(in.Smoking)),
		"alcoholConsumption":        string(in.AlcoholConsumption),
		"physicalActivity":          string(in.PhysicalActivity),
		"dietQuality":               itoa(int(in.DietQuality)),
		"sleepQuality":              itoa(in.SleepQuality),
		"familyHistoryAlzheimers":   string(in.FamilyHistoryAlzheimers),
	}
}
