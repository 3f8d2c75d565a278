package server

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/spektr-org/sleepscope/analytics"
	"github.com/spektr-org/sleepscope/dataset"
	"github.com/spektr-org/sleepscope/engine"
)

// filterQuery is the dashboard filter as query parameters. Unset bounds
// stay nil so a range with one bound can take the other from the slider
// defaults.
type filterQuery struct {
	Gender    string `form:"gender" binding:"omitempty,oneof=male female other"`
	AgeMin    *int   `form:"ageMin" binding:"omitempty,min=0"`
	AgeMax    *int   `form:"ageMax" binding:"omitempty,min=0"`
	HeightMin *int   `form:"heightMin" binding:"omitempty,min=0"`
	HeightMax *int   `form:"heightMax" binding:"omitempty,min=0"`
	WeightMin *int   `form:"weightMin" binding:"omitempty,min=0"`
	WeightMax *int   `form:"weightMax" binding:"omitempty,min=0"`
	StartDate string `form:"startDate" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"endDate" binding:"omitempty,datetime=2006-01-02"`
}

// statisticQuery picks the measure and aggregation of /summary.
type statisticQuery struct {
	Measure     string `form:"measure" binding:"omitempty,oneof=duration efficiency deep_sleep rem_sleep light_sleep"`
	Aggregation string `form:"aggregation" binding:"omitempty,oneof=avg sum count min max variance stats"`
}

// breakdownQuery is analytics.BreakdownQuery as query parameters.
type breakdownQuery struct {
	GroupBy     string `form:"groupBy" binding:"omitempty,oneof=employee_id date"`
	Measure     string `form:"measure" binding:"omitempty,oneof=duration efficiency deep_sleep rem_sleep light_sleep"`
	Aggregation string `form:"aggregation" binding:"omitempty,oneof=avg sum count min max variance stats"`
	Sort        string `form:"sort" binding:"omitempty,oneof=value_desc value_asc date_asc date_desc numeric_asc label_asc label_desc"`
	Limit       int    `form:"limit" binding:"min=0"`
}

type periodQuery struct {
	Period string `form:"period,default=all"`
}

type exportQuery struct {
	Collection string `form:"collection,default=records" binding:"oneof=records employees"`
}

type employeeURI struct {
	ID int `uri:"id" binding:"required,min=1"`
}

// bindQuery binds query parameters into obj; any binding or validation
// failure is invalid input.
func bindQuery(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindQuery(obj); err != nil {
		return fmt.Errorf("query: %v: %w", err, engine.ErrInvalidInput)
	}
	return nil
}

// filterFromQuery reads the dashboard filter from query parameters:
//
//	gender, ageMin, ageMax, heightMin, heightMax, weightMin, weightMax,
//	startDate, endDate
func filterFromQuery(c *gin.Context) (dataset.Filter, error) {
	var q filterQuery
	if err := bindQuery(c, &q); err != nil {
		return dataset.Filter{}, err
	}

	f := dataset.Filter{
		Gender:      dataset.Gender(q.Gender),
		AgeRange:    boundedRange(q.AgeMin, q.AgeMax, dataset.DefaultFilterBounds.Age),
		HeightRange: boundedRange(q.HeightMin, q.HeightMax, dataset.DefaultFilterBounds.Height),
		WeightRange: boundedRange(q.WeightMin, q.WeightMax, dataset.DefaultFilterBounds.Weight),
	}
	if q.StartDate != "" || q.EndDate != "" {
		f.DateRange = &dataset.DateRange{Start: q.StartDate, End: q.EndDate}
	}
	return f, f.Validate()
}

// boundedRange builds a range when either bound is set, filling the other
// from bounds.
func boundedRange(lo, hi *int, bounds dataset.IntRange) *dataset.IntRange {
	if lo == nil && hi == nil {
		return nil
	}
	r := bounds
	if lo != nil {
		r.Min = *lo
	}
	if hi != nil {
		r.Max = *hi
	}
	return &r
}

func statisticFromQuery(c *gin.Context) (statisticQuery, error) {
	var q statisticQuery
	if err := bindQuery(c, &q); err != nil {
		return statisticQuery{}, err
	}
	return q, nil
}

func breakdownFromQuery(c *gin.Context) (analytics.BreakdownQuery, error) {
	var q breakdownQuery
	if err := bindQuery(c, &q); err != nil {
		return analytics.BreakdownQuery{}, err
	}
	return analytics.BreakdownQuery{
		GroupBy:     q.GroupBy,
		Measure:     q.Measure,
		Aggregation: q.Aggregation,
		Sort:        q.Sort,
		Limit:       q.Limit,
	}, nil
}

func periodFromQuery(c *gin.Context) (string, error) {
	var q periodQuery
	if err := bindQuery(c, &q); err != nil {
		return "", err
	}
	return q.Period, nil
}

func idParam(c *gin.Context) (int, error) {
	var uri employeeURI
	if err := c.ShouldBindUri(&uri); err != nil {
		return 0, fmt.Errorf("employee id %q: %v: %w", c.Param("id"), err, engine.ErrInvalidInput)
	}
	return uri.ID, nil
}
