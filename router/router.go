package router

import (
	"github.com/gin-gonic/gin"

	"wealthy-cats/controller"
	"wealthy-cats/middleware"
	"wealthy-cats/ws"
)

func InitRouter(r *gin.Engine, ctl *controller.Controller, sessions middleware.SessionLookup, wsHandler *ws.Handler) {
	api := r.Group("/session")
	{
		api.POST("/create", ctl.CreateSession)
		api.GET("/list", ctl.ListSessions)
		api.POST("/delete", ctl.DeleteSession)

		one := api.Group("/:sessionID", middleware.SessionRequired(sessions))
		one.GET("", ctl.GetSession)
		one.POST("/draw", ctl.Draw)
		one.POST("/confirm", ctl.Confirm)
		one.POST("/skip", ctl.Skip)
		one.POST("/deposit", ctl.Deposit)
		one.POST("/production", ctl.Production)
		one.POST("/order", ctl.Order)
		one.POST("/restart", ctl.Restart)
	}

	prefs := r.Group("/prefs")
	{
		prefs.GET("/audio", ctl.GetAudio)
		prefs.POST("/audio", ctl.UpdateAudio)
	}

	progress := r.Group("/progress")
	{
		progress.GET("", ctl.GetProgress)
		progress.POST("/unlock", ctl.UnlockLevel)
		progress.POST("/reset", ctl.ResetProgress)
	}

	// event stream
	r.GET("/ws", wsHandler.HandleWebSocket)
}
