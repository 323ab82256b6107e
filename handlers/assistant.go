package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"jetset/config"
	"jetset/models"
	"jetset/services/router"
	"jetset/utils"
)

var DomainRouter router.DomainRouter

// RouteHandler classifies one conversational turn into a domain. The message
// is also recorded for periodic background summarization; that bookkeeping is
// best effort and never blocks routing.
func RouteHandler(c *gin.Context) {
	var req models.RouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	ctx := c.Request.Context()
	recordForSummary(c, req.UserID, req.Text)

	route, err := DomainRouter.Route(ctx, req.UserID, req.Text)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to route message", err.Error())
		return
	}
	c.JSON(http.StatusOK, models.RouteResponse{Route: route})
}

func recordForSummary(c *gin.Context, userID, text string) {
	if SummaryStore == nil {
		return
	}
	logger := utils.GetLogger()
	ctx := c.Request.Context()
	count, err := SummaryStore.RecordMessage(ctx, userID, text)
	if err != nil {
		logger.Warn("failed to record message", zap.String("userID", userID), zap.Error(err))
		return
	}
	every := int64(config.AppConfig.SummaryEvery)
	if TaskClient == nil || every <= 0 || count%every != 0 {
		return
	}
	transcript, err := SummaryStore.Transcript(ctx, userID)
	if err != nil {
		logger.Warn("failed to read transcript", zap.String("userID", userID), zap.Error(err))
		return
	}
	payload := models.SummaryPayload{UserID: userID, Transcript: transcript}
	if err := TaskClient.EnqueueSummary(ctx, payload); err != nil {
		logger.Warn("failed to enqueue summary task", zap.String("userID", userID), zap.Error(err))
	}
}
