package schema

import (
	"github.com/spektr-org/sleepscope/dataset"
	"github.com/spektr-org/sleepscope/engine"
)

// Collection keys.
const (
	CollectionEmployees = "employees"
	CollectionRecords   = "records"
)

// maxSamples caps the sample values listed per dimension.
const maxSamples = 5

// Describe builds the schema of a generated sleep dataset.
func Describe(ds *dataset.Dataset) Config {
	cfg := ds.Config()
	start := cfg.WindowStart()

	empView := ds.EmployeeView()
	recView := ds.RecordView()

	gender := DefaultDimension(dataset.KeyGender, "Gender", genderSamples())
	gender.Description = "Sex category; the generator alternates male and female"

	date := DefaultDimension(dataset.KeyDate, "Date", samples(recView, dataset.KeyDate))
	date.IsTemporal = true
	date.TemporalFormat = engine.DateLayout

	employees := Collection{
		Key:     CollectionEmployees,
		Records: empView.Len(),
		Dimensions: []DimensionMeta{
			{Key: dataset.KeyID, DisplayName: "Employee ID", SampleValues: samples(empView, dataset.KeyID), Filterable: true},
			{Key: dataset.KeyName, DisplayName: "Name", SampleValues: samples(empView, dataset.KeyName)},
			DefaultDimension(dataset.KeyDepartment, "Department", dataset.Departments),
			gender,
		},
		Measures: []MeasureMeta{
			intMeasure(empView, dataset.KeyAge, "Age", "years"),
			intMeasure(empView, dataset.KeyHeight, "Height", "cm"),
			intMeasure(empView, dataset.KeyWeight, "Weight", "kg"),
		},
	}

	records := Collection{
		Key:     CollectionRecords,
		Records: recView.Len(),
		Dimensions: []DimensionMeta{
			DefaultDimension(dataset.KeyEmployeeID, "Employee ID", samples(recView, dataset.KeyEmployeeID)),
			date,
		},
		Measures: []MeasureMeta{
			measure(recView, dataset.KeyDuration, "Sleep Duration", "hours", "Hours asleep, 4 to 10"),
			measure(recView, dataset.KeyEfficiency, "Sleep Efficiency", "percent", "Share of time in bed spent asleep, 60 to 98"),
			measure(recView, dataset.KeyDeepSleep, "Deep Sleep", "percent", "Share of sleep in deep stage, 10 to 35"),
			measure(recView, dataset.KeyRemSleep, "REM Sleep", "percent", "Share of sleep in REM stage, 15 to 30"),
			measure(recView, dataset.KeyLightSleep, "Light Sleep", "percent", "Remainder after deep and REM"),
		},
	}

	return Config{
		Name:        "sleepscope",
		Version:     "1",
		Description: "Synthetic employee sleep observations",
		Collections: []Collection{employees, records},
		Seed:        cfg.Seed,
		WindowFrom:  start.Format(engine.DateLayout),
		WindowTo:    start.AddDate(0, 0, cfg.Days-1).Format(engine.DateLayout),
	}
}

func measure(view engine.RecordView, key, name, unit, description string) MeasureMeta {
	m := DefaultMeasure(key, name, unit)
	m.Description = description
	if view.Len() > 0 {
		m.Min = engine.MinMeasure(view, key)
		m.Max = engine.MaxMeasure(view, key)
	}
	return m
}

func intMeasure(view engine.RecordView, key, name, unit string) MeasureMeta {
	m := measure(view, key, name, unit, "")
	m.Format = "0"
	return m
}

func samples(view engine.RecordView, key string) []string {
	values := engine.UniqueValues(view, key)
	if len(values) > maxSamples {
		values = values[:maxSamples]
	}
	if values == nil {
		return []string{}
	}
	return values
}

func genderSamples() []string {
	out := make([]string, len(dataset.Genders))
	for i, g := range dataset.Genders {
		out[i] = string(g)
	}
	return out
}
