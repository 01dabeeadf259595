package table

// Column names of the fixed 12-column survey schema
const (
	ColAge                    = "Age"
	ColGender                 = "Gender"
	ColCountry                = "Country"
	ColDietType               = "Diet Type"
	ColSleepHours             = "Sleep Hours"
	ColStressLevel            = "Stress Level"
	ColExerciseLevel          = "Exercise Level"
	ColHappinessScore         = "Happiness Score"
	ColMentalHealthCondition  = "Mental Health Condition"
	ColSocialInteractionScore = "Social Interaction Score"
	ColWorkHours              = "Work Hours"
	ColCaffeineIntake         = "Caffeine Intake"
)

// Well-known group labels used by the pre-registered contrasts
const (
	DietVegan      = "Vegan"
	DietVegetarian = "Vegetarian"
	ConditionNone  = "None"
)

// OrdinalLevels is the shared rank order for ordinal survey columns
var OrdinalLevels = []string{"Low", "Moderate", "High"}

// SurveySchema returns the fixed schema of the lifestyle/mental-health
// survey dataset. The column set and order are known a priori; readers
// must reject files that do not carry exactly these columns.
func SurveySchema() Schema {
	return NewSchema([]Column{
		{Name: ColAge, Type: TypeNumeric},
		{Name: ColGender, Type: TypeCategorical},
		{Name: ColCountry, Type: TypeCategorical},
		{Name: ColDietType, Type: TypeCategorical},
		{Name: ColSleepHours, Type: TypeNumeric},
		{Name: ColStressLevel, Type: TypeOrdinal, Levels: OrdinalLevels},
		{Name: ColExerciseLevel, Type: TypeOrdinal, Levels: OrdinalLevels},
		{Name: ColHappinessScore, Type: TypeNumeric},
		{Name: ColMentalHealthCondition, Type: TypeCategorical},
		{Name: ColSocialInteractionScore, Type: TypeNumeric},
		{Name: ColWorkHours, Type: TypeNumeric},
		{Name: ColCaffeineIntake, Type: TypeNumeric},
	})
}
