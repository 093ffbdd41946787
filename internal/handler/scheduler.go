package handler

import (
	"net/http"
	"time"

	"spendwise/internal/schedule"
	"spendwise/internal/util"

	"github.com/gin-gonic/gin"
)

// SchedulerHandler exposes the daily batch run as an explicit endpoint
// for an external time trigger. Nothing in the process self-schedules.
type SchedulerHandler struct {
	Runner *schedule.Runner
}

func NewSchedulerHandler(runner *schedule.Runner) *SchedulerHandler {
	return &SchedulerHandler{Runner: runner}
}

// Run triggers one batch run. The optional ?date=YYYY-MM-DD parameter
// allows deterministic reprocessing and backfill; it defaults to today.
func (h *SchedulerHandler) Run(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	refDate := schedule.Midnight(time.Now())
	if dateStr := c.Query("date"); dateStr != "" {
		d, err := util.ValidateDate(dateStr)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "date must be YYYY-MM-DD")
			return
		}
		refDate = d
	}

	report, err := h.Runner.RunDaily(refDate)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "daily run failed")
		return
	}

	util.Success(c, util.Response{
		"report": report,
	})
}
