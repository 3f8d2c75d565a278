package dataset

// Gender is the sex category recorded for an employee.
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
	// Other is a declared category the generator never produces.
	Other Gender = "other"
)

// Genders lists every declared category in declaration order.
var Genders = []Gender{Male, Female, Other}

// Valid reports whether g is a declared category.
func (g Gender) Valid() bool {
	for _, known := range Genders {
		if g == known {
			return true
		}
	}
	return false
}

// Departments is the fixed department list, assigned round-robin.
var Departments = []string{"Engineering", "Marketing", "Sales", "HR", "Finance"}

// DepartmentColors maps each department to its chart colour.
var DepartmentColors = map[string]string{
	"Engineering": "#8884d8",
	"Marketing":   "#82ca9d",
	"Sales":       "#ffc658",
	"HR":          "#ff8042",
	"Finance":     "#0088fe",
}

// DepartmentColor returns the chart colour for a department, falling back
// to the Engineering colour for unknown names.
func DepartmentColor(department string) string {
	if c, ok := DepartmentColors[department]; ok {
		return c
	}
	return DepartmentColors["Engineering"]
}

// Employee is one synthetic subject.
type Employee struct {
	ID         int    `json:"id" yaml:"id"`
	Name       string `json:"name" yaml:"name"`
	Department string `json:"department" yaml:"department"`
	Age        int    `json:"age" yaml:"age"`
	Gender     Gender `json:"gender" yaml:"gender"`
	Height     int    `json:"height" yaml:"height"` // cm
	Weight     int    `json:"weight" yaml:"weight"` // kg
}

// SleepRecord is one night of sleep for one employee.
type SleepRecord struct {
	EmployeeID           int     `json:"employeeId" yaml:"employeeId"`
	Date                 string  `json:"date" yaml:"date"`         // YYYY-MM-DD
	Duration             float64 `json:"duration" yaml:"duration"` // hours
	Efficiency           float64 `json:"efficiency" yaml:"efficiency"`
	DeepSleepPercentage  float64 `json:"deepSleepPercentage" yaml:"deepSleepPercentage"`
	RemSleepPercentage   float64 `json:"remSleepPercentage" yaml:"remSleepPercentage"`
	LightSleepPercentage float64 `json:"lightSleepPercentage" yaml:"lightSleepPercentage"`
}
