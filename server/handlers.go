package server

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/spektr-org/sleepscope/analytics"
	"github.com/spektr-org/sleepscope/engine"
	"github.com/spektr-org/sleepscope/helpers"
	"github.com/spektr-org/sleepscope/schema"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// handlers binds the dashboard to gin routes.
type handlers struct {
	dash   *analytics.Dashboard
	schema schema.Config
	log    *zap.Logger
}

func (h *handlers) fail(c *gin.Context, err error) { respondError(c, h.log, err) }

func (h *handlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, Ok(gin.H{"status": "ok"}))
}

func (h *handlers) getSchema(c *gin.Context) {
	c.JSON(http.StatusOK, Ok(h.schema))
}

func (h *handlers) listEmployees(c *gin.Context) {
	f, err := filterFromQuery(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	sel, err := h.dash.Select(f)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, Ok(sel.Employees))
}

func (h *handlers) listRecords(c *gin.Context) {
	f, err := filterFromQuery(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	sel, err := h.dash.Select(f)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, Ok(sel.Records))
}

func (h *handlers) employeeRecords(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, Ok(h.dash.EmployeeRecords(id)))
}

func (h *handlers) employeeStats(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	period, err := periodFromQuery(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	stats, err := h.dash.EmployeeStats(id, period)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, Ok(stats))
}

func (h *handlers) employeeProfile(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	period, err := periodFromQuery(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	profile, err := h.dash.Profile(id, period)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, Ok(profile))
}

func (h *handlers) averages(c *gin.Context) {
	f, err := filterFromQuery(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	averages, err := h.dash.AverageByDate(f)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, Ok(averages))
}

func (h *handlers) distribution(c *gin.Context) {
	values, err := h.dash.DistributionForDate(c.Param("date"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, Ok(values))
}

type quartilesRequest struct {
	Values []float64 `json:"values"`
}

func (h *handlers) quartiles(c *gin.Context) {
	var req quartilesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, fmt.Errorf("request body: %v: %w", err, engine.ErrInvalidInput))
		return
	}
	summary, err := engine.Quartiles(req.Values)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, Ok(summary))
}

func (h *handlers) boxPlots(c *gin.Context) {
	f, err := filterFromQuery(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	boxes, err := h.dash.BoxPlots(f)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, Ok(boxes))
}

func (h *handlers) histogram(c *gin.Context) {
	f, err := filterFromQuery(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	bins, err := h.dash.Histogram(f)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, Ok(bins))
}

func (h *handlers) comparison(c *gin.Context) {
	f, err := filterFromQuery(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	stats, err := h.dash.Comparison(f)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, Ok(stats))
}

func (h *handlers) summary(c *gin.Context) {
	f, err := filterFromQuery(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	stat, err := statisticFromQuery(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	text, err := h.dash.Summary(f, stat.Measure, stat.Aggregation)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, Ok(text))
}

func (h *handlers) breakdown(c *gin.Context) {
	f, err := filterFromQuery(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	q, err := breakdownFromQuery(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	b, err := h.dash.Breakdown(f, q)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, Ok(b))
}

func (h *handlers) overview(c *gin.Context) {
	f, err := filterFromQuery(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	overview, err := h.dash.Overview(f)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, Ok(overview))
}

func (h *handlers) individual(c *gin.Context) {
	f, err := filterFromQuery(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	page, err := h.dash.Individual(f)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, Ok(page))
}

// exportCSV streams the filtered records, or the filtered roster with
// ?collection=employees.
func (h *handlers) exportCSV(c *gin.Context) {
	f, err := filterFromQuery(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	sel, err := h.dash.Select(f)
	if err != nil {
		h.fail(c, err)
		return
	}

	var q exportQuery
	if err := bindQuery(c, &q); err != nil {
		h.fail(c, err)
		return
	}

	var buf bytes.Buffer
	if q.Collection == schema.CollectionEmployees {
		err = helpers.WriteEmployeesCSV(&buf, sel.Employees)
	} else {
		err = helpers.WriteRecordsCSV(&buf, sel.Records)
	}
	if err != nil {
		h.fail(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.csv"`, q.Collection))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (h *handlers) exportXLSX(c *gin.Context) {
	f, err := filterFromQuery(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	tables, err := h.dash.ExportTables(f)
	if err != nil {
		h.fail(c, err)
		return
	}
	data, err := helpers.WorkbookBytes(tables...)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.log.Info("📤 workbook exported",
		zap.String("request_id", RequestIDFrom(c)),
		zap.Int("bytes", len(data)),
	)
	c.Header("Content-Disposition", `attachment; filename="sleepscope.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}
