package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"wealthy-cats/game"
	"wealthy-cats/service"
)

type Controller struct {
	sessions *service.SessionService
	prefs    *service.PrefsService
	progress *service.ProgressService
}

func New(sessions *service.SessionService, prefs *service.PrefsService, progress *service.ProgressService) *Controller {
	return &Controller{sessions: sessions, prefs: prefs, progress: progress}
}

func ok(c *gin.Context, msg string, data interface{}) {
	body := gin.H{
		"status_code": http.StatusOK,
		"msg":         msg,
	}
	if data != nil {
		body["data"] = data
	}
	c.JSON(http.StatusOK, body)
}

// fail maps service and game errors to a status code.
func fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, service.ErrSessionClosed):
		status = http.StatusNotFound
	case errors.Is(err, game.ErrNotIdle), errors.Is(err, game.ErrNoCard),
		errors.Is(err, game.ErrMandatory), errors.Is(err, game.ErrNoPrompt),
		errors.Is(err, game.ErrGameOver), errors.Is(err, game.ErrUnknownOrder):
		status = http.StatusConflict
	}
	_ = c.Error(err)
	c.JSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields"})
}
