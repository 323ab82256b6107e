package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"jetset/config"
	"jetset/models"
	"jetset/services/booking"
	"jetset/services/intelligence"
	"jetset/services/tasks"
	"jetset/utils"
)

// Package-level collaborators, wired at startup.
var (
	DesertService booking.BookingService
	WaterService  booking.BookingService
	SummaryStore  *intelligence.SummaryStore
	TaskClient    *tasks.Client
)

// serviceFor resolves the :domain path parameter, or writes a 404.
func serviceFor(c *gin.Context) (booking.BookingService, bool) {
	switch c.Param("domain") {
	case "desert":
		return DesertService, true
	case "water":
		return WaterService, true
	default:
		utils.JSONError(c, http.StatusNotFound, "unknown domain", "supported domains are desert and water")
		return nil, false
	}
}

// statusFor maps booking error codes onto HTTP statuses: recoverable
// validation problems are 422, sequencing problems are 409.
func statusFor(err error) int {
	switch booking.ErrorCode(err) {
	case booking.CodeIncompleteBooking, booking.CodeMissingPrice:
		return http.StatusConflict
	case booking.CodeMissingField, booking.CodeInvalidTime, booking.CodeInvalidDuration,
		booking.CodeOutOfHours, booking.CodeUnknownActivity:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// GetBookingHandler returns the user's draft, creating one on first access.
func GetBookingHandler(c *gin.Context) {
	svc, ok := serviceFor(c)
	if !ok {
		return
	}
	draft, err := svc.GetOrCreate(c.Request.Context(), c.Param("userID"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load booking", err.Error())
		return
	}
	c.JSON(http.StatusOK, draft)
}

// UpdateBookingHandler merges a partial patch into the user's draft. On
// validation failure the stored draft is untouched and returned alongside the
// error so the caller can re-prompt.
func UpdateBookingHandler(c *gin.Context) {
	svc, ok := serviceFor(c)
	if !ok {
		return
	}
	var patch models.BookingPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	draft, err := svc.Update(c.Request.Context(), c.Param("userID"), patch)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error(), "draft": draft})
		return
	}
	c.JSON(http.StatusOK, draft)
}

// ComputePriceHandler prices the draft, or signals that the activity's price
// must come from an external source.
func ComputePriceHandler(c *gin.Context) {
	svc, ok := serviceFor(c)
	if !ok {
		return
	}
	res, err := svc.ComputePrice(c.Request.Context(), c.Param("userID"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

// ConfirmBookingHandler finalizes a ready draft. On success it schedules the
// tour reminder and resets the conversation summary state, both best effort.
func ConfirmBookingHandler(c *gin.Context) {
	svc, ok := serviceFor(c)
	if !ok {
		return
	}
	userID := c.Param("userID")
	conf, err := svc.Confirm(c.Request.Context(), userID)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	scheduleReminder(c, conf)
	if SummaryStore != nil {
		if err := SummaryStore.Reset(c.Request.Context(), userID); err != nil {
			utils.GetLogger().Warn("failed to reset conversation summary",
				zap.String("userID", userID), zap.Error(err))
		}
	}
	c.JSON(http.StatusOK, conf)
}

// HasActiveBookingHandler reports whether the user has an in-progress draft.
func HasActiveBookingHandler(c *gin.Context) {
	svc, ok := serviceFor(c)
	if !ok {
		return
	}
	active, err := svc.HasActiveBooking(c.Request.Context(), c.Param("userID"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to check booking", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"active": active})
}

// scheduleReminder queues a reminder ahead of the earliest tour start. A
// missing task client or an unparseable start simply skips the reminder.
func scheduleReminder(c *gin.Context, conf *models.Confirmation) {
	if TaskClient == nil || conf.Draft == nil {
		return
	}
	logger := utils.GetLogger()
	draft := conf.Draft
	var earliest time.Time
	var startISO string
	for i := range draft.Items {
		iso := draft.ResolveDateTime(i)
		start, err := booking.ParseStartTime(iso, config.AppConfig.Timezone)
		if err != nil {
			continue
		}
		if earliest.IsZero() || start.Before(earliest) {
			earliest = start
			startISO = iso
		}
	}
	if earliest.IsZero() {
		return
	}
	fireAt := earliest.Add(-time.Duration(config.AppConfig.ReminderLeadMin) * time.Minute)
	if fireAt.Before(time.Now()) {
		return
	}
	payload := models.ReminderPayload{
		Domain:     draft.Domain,
		UserID:     draft.UserID,
		BookingRef: conf.BookingRef,
		StartISO:   startISO,
	}
	if err := TaskClient.ScheduleReminder(c.Request.Context(), payload, fireAt); err != nil {
		logger.Warn("failed to schedule tour reminder",
			zap.String("userID", draft.UserID), zap.Error(err))
	}
}
