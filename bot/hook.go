package bot

import (
	"net/http"

	"store-ticket-bot/internal/discord/requests"
	"store-ticket-bot/internal/logger"

	"github.com/gin-gonic/gin"
)

// EventSource delivers gateway events to a handler.
type EventSource interface {
	HandleEvents(h requests.EventHandler)
}

// InitHooks registers the liveness endpoint and subscribes the router to
// gateway events.
func InitHooks(app *gin.Engine, source EventSource, router *Router) {
	logger.Info("Init liveness endpoint...")

	app.GET("/", Alive)
	app.HEAD("/", Alive)

	logger.Info("Setup gateway handlers...")

	source.HandleEvents(router)
}

// Alive answers the platform health checks.
func Alive(c *gin.Context) {
	c.String(http.StatusOK, TEXT_ALIVE)
}
