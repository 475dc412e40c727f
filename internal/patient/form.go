package patient

import "strconv"

// Control is the kind of input widget a field renders as. Every control has a
// closed domain; there is no free-text control.
type Control string

const (
	Slider Control = "slider"
	Radio  Control = "radio"
	Select Control = "select"
)

type Option struct {
	Value string
	Label string
}

// Field describes how one Input field is presented.
type Field struct {
	Name    string
	Label   string
	Help    string
	Control Control
	Range   Range
	Step    float64
	Options []Option
}

type Section struct {
	Title  string
	Fields []Field
}

func slider(name, label string, r Range, step float64) Field {
	return Field{Name: name, Label: label, Control: Slider, Range: r, Step: step}
}

func yesNo(name, label string) Field {
	return Field{
		Name:    name,
		Label:   label,
		Control: Radio,
		Options: []Option{{Value: string(No), Label: "No"}, {Value: string(Yes), Label: "Yes"}},
	}
}

func codes(name, label, help string, control Control, lo, hi int) Field {
	opts := make([]Option, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		v := strconv.Itoa(i)
		opts = append(opts, Option{Value: v, Label: v})
	}
	return Field{Name: name, Label: label, Help: help, Control: control, Options: opts}
}

// Sections returns the form layout grouped by theme. The grouping is
// presentational only.
func Sections() []Section {
	ethnicityOpts := make([]Option, 0, len(ethnicities))
	for _, e := range ethnicities {
		ethnicityOpts = append(ethnicityOpts, Option{Value: string(e), Label: string(e)})
	}

	return []Section{
		{
			Title: "Basic Information",
			Fields: []Field{
				slider("age", "Age", AgeRange, 1),
				{
					Name:    "gender",
					Label:   "Gender",
					Control: Radio,
					Options: []Option{{Value: string(Male), Label: "Male"}, {Value: string(Female), Label: "Female"}},
				},
				{Name: "ethnicity", Label: "Ethnicity", Control: Select, Options: ethnicityOpts},
				codes("educationLevel", "Education Level", "0 = None, 3 = Highest", Select,
					int(EducationNone), int(EducationHighest)),
				slider("bmi", "BMI", BMIRange, 0.01),
			},
		},
		{
			Title: "Health History",
			Fields: []Field{
				yesNo("cardiovascularDisease", "Cardiovascular Disease"),
				yesNo("diabetes", "Diabetes"),
				yesNo("depression", "Depression"),
				yesNo("headInjury", "History of Head Injury"),
				yesNo("hypertension", "Hypertension"),
				slider("systolicBP", "Systolic Blood Pressure", SystolicRange, 1),
				slider("diastolicBP", "Diastolic Blood Pressure", DiastolicRange, 1),
			},
		},
		{
			Title: "Lab Values",
			Fields: []Field{
				slider("cholesterolTotal", "Total Cholesterol", CholesterolRange, 1),
				slider("cholesterolLDL", "LDL Cholesterol", LDLRange, 1),
				slider("cholesterolHDL", "HDL Cholesterol", HDLRange, 1),
				slider("cholesterolTriglycerides", "Triglycerides", TriglyceridesRange, 1),
			},
		},
		{
			Title: "Mental and Functional",
			Fields: []Field{
				slider("mmse", "MMSE Score", MMSERange, 1),
				codes("functionalAssessment", "Functional Assessment", "", Select,
					int(FunctionalMin), int(FunctionalMax)),
				yesNo("memoryComplaints", "Memory Complaints"),
				yesNo("behavioralProblems", "Behavioral Problems"),
				yesNo("adl", "Issues with Activities of Daily Living (ADL)"),
				yesNo("confusion", "Experiencing Confusion?"),
				yesNo("disorientation", "Experiencing Disorientation?"),
				yesNo("personalityChanges", "Personality Changes?"),
				yesNo("forgetfulness", "Forgetfulness?"),
				yesNo("difficultyCompletingTasks", "Difficulty Completing Tasks?"),
			},
		},
		{
			Title: "Lifestyle & Risk Factors",
			Fields: []Field{
				codes("smoking", "Smoking Status", "0 = Never, 1 = Former, 2 = Current", Radio,
					int(SmokingNever), int(SmokingCurrent)),
				yesNo("alcoholConsumption", "Alcohol Consumption"),
				yesNo("physicalActivity", "Physically Active?"),
				codes("dietQuality", "Diet Quality", "0 = Poor, 2 = Healthy", Select,
					int(DietPoor), int(DietHealthy)),
				slider("sleepQuality", "Sleep Quality (1-10)", SleepRange, 1),
				yesNo("familyHistoryAlzheimers", "Family History of Alzheimer's"),
			},
		},
	}
}
