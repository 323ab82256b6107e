package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"jetset/config"
	"jetset/utils"
)

// TimeNowHandler returns the current time in the requested timezone, so the
// conversational layer can resolve phrases like "tomorrow at 3pm" against the
// operator's clock rather than the server's.
func TimeNowHandler(c *gin.Context) {
	tz := c.DefaultQuery("tz", config.AppConfig.Timezone)
	loc, err := time.LoadLocation(tz)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "unknown timezone", err.Error())
		return
	}
	now := time.Now().In(loc)
	c.JSON(http.StatusOK, gin.H{
		"tz":      tz,
		"now_iso": now.Format(time.RFC3339),
		"weekday": now.Weekday().String(),
	})
}

// HealthHandler reports liveness plus the latest redis probe results.
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"health": utils.GetHealthStatus(),
	})
}
