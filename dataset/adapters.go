package dataset

import (
	"strconv"

	"github.com/spektr-org/sleepscope/engine"
)

// Dimension and measure keys exposed through the engine views.
const (
	KeyID         = "id"
	KeyName       = "name"
	KeyDepartment = "department"
	KeyGender     = "gender"
	KeyAge        = "age"
	KeyHeight     = "height"
	KeyWeight     = "weight"

	KeyEmployeeID = "employee_id"
	KeyDate       = "date"
	KeyDuration   = "duration"
	KeyEfficiency = "efficiency"
	KeyDeepSleep  = "deep_sleep"
	KeyRemSleep   = "rem_sleep"
	KeyLightSleep = "light_sleep"
)

// RecordMeasures lists the numeric columns of a sleep record in display order.
var RecordMeasures = []string{KeyDuration, KeyEfficiency, KeyDeepSleep, KeyRemSleep, KeyLightSleep}

// EmployeeAdapter exposes Employee fields to the engine.
var EmployeeAdapter = engine.NewDomainAdapter[Employee]().
	Dimension(KeyID, func(e Employee) string { return strconv.Itoa(e.ID) }).
	Dimension(KeyName, func(e Employee) string { return e.Name }).
	Dimension(KeyDepartment, func(e Employee) string { return e.Department }).
	Dimension(KeyGender, func(e Employee) string { return string(e.Gender) }).
	Measure(KeyAge, func(e Employee) float64 { return float64(e.Age) }).
	Measure(KeyHeight, func(e Employee) float64 { return float64(e.Height) }).
	Measure(KeyWeight, func(e Employee) float64 { return float64(e.Weight) })

// RecordAdapter exposes SleepRecord fields to the engine.
var RecordAdapter = engine.NewDomainAdapter[SleepRecord]().
	Dimension(KeyEmployeeID, func(r SleepRecord) string { return strconv.Itoa(r.EmployeeID) }).
	Dimension(KeyDate, func(r SleepRecord) string { return r.Date }).
	Measure(KeyDuration, func(r SleepRecord) float64 { return r.Duration }).
	Measure(KeyEfficiency, func(r SleepRecord) float64 { return r.Efficiency }).
	Measure(KeyDeepSleep, func(r SleepRecord) float64 { return r.DeepSleepPercentage }).
	Measure(KeyRemSleep, func(r SleepRecord) float64 { return r.RemSleepPercentage }).
	Measure(KeyLightSleep, func(r SleepRecord) float64 { return r.LightSleepPercentage })
