package server

import (
	"bytes"
	"context"
	"net/http"
	"time"

	ical "github.com/emersion/go-ical"
	"github.com/gin-gonic/gin"

	"github.com/penwyp/go-eld-log/internal/core/model"
	"github.com/penwyp/go-eld-log/internal/presentation/formatter"
	"github.com/penwyp/go-eld-log/internal/util"
)

type logService interface {
	Dates(ctx context.Context) ([]string, error)
	Day(ctx context.Context, date string) (model.DayLog, error)
}

type datesResponse struct {
	Dates []string `json:"dates"`
}

type remarksResponse struct {
	Date    string         `json:"date"`
	Remarks []model.Remark `json:"remarks"`
}

// LogHandler serves computed day logs. Every request reloads the source.
type LogHandler struct {
	logSvc logService
	now    func() time.Time
}

func NewLogHandler(logSvc logService) *LogHandler {
	return &LogHandler{logSvc: logSvc, now: time.Now}
}

func (h *LogHandler) Register(r *gin.RouterGroup) {
	r.GET("/logs", h.GetDates)
	r.GET("/logs/:date", h.GetDay)
	r.GET("/logs/:date/remarks", h.GetRemarks)
	r.GET("/logs/:date/ics", h.GetCalendar)
}

func (h *LogHandler) GetDates(c *gin.Context) {
	dates, err := h.logSvc.Dates(c.Request.Context())
	if err != nil {
		util.LogError("Failed to list log dates", util.F("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load logs"})
		return
	}
	c.JSON(http.StatusOK, datesResponse{Dates: dates})
}

func (h *LogHandler) GetDay(c *gin.Context) {
	day, ok := h.loadDay(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, day)
}

func (h *LogHandler) GetRemarks(c *gin.Context) {
	day, ok := h.loadDay(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, remarksResponse{Date: day.Date, Remarks: day.Remarks})
}

func (h *LogHandler) GetCalendar(c *gin.Context) {
	day, ok := h.loadDay(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	cal := formatter.BuildCalendar([]model.DayLog{day}, h.now())
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		util.LogError("Failed to encode calendar", util.F("date", day.Date), util.F("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to encode calendar"})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="eld-`+day.Date+`.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", buf.Bytes())
}

// loadDay validates the :date parameter and computes the day, writing the
// error response itself when it fails.
func (h *LogHandler) loadDay(c *gin.Context) (model.DayLog, bool) {
	date := c.Param("date")
	if _, err := time.Parse(model.DateLayout, date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return model.DayLog{}, false
	}

	day, err := h.logSvc.Day(c.Request.Context(), date)
	if err != nil {
		util.LogError("Failed to compute day", util.F("date", date), util.F("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute log"})
		return model.DayLog{}, false
	}
	return day, true
}
