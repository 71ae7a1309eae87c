package controller

import (
	"github.com/gin-gonic/gin"

	"wealthy-cats/dto"
	"wealthy-cats/service"
)

func (ctl *Controller) GetAudio(c *gin.Context) {
	p, err := ctl.prefs.Audio(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "ok", p)
}

func (ctl *Controller) UpdateAudio(c *gin.Context) {
	var patch service.AudioPrefsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c)
		return
	}
	p, err := ctl.prefs.UpdateAudio(c.Request.Context(), patch)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "audio saved", p)
}

func (ctl *Controller) GetProgress(c *gin.Context) {
	level, err := ctl.progress.Unlocked(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "ok", dto.ProgressResponse{UnlockedLevel: level})
}

func (ctl *Controller) UnlockLevel(c *gin.Context) {
	var req dto.UnlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	level, err := ctl.progress.Unlock(c.Request.Context(), req.Level)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "level unlocked", dto.ProgressResponse{UnlockedLevel: level})
}

func (ctl *Controller) ResetProgress(c *gin.Context) {
	if err := ctl.progress.Reset(c.Request.Context()); err != nil {
		fail(c, err)
		return
	}
	ok(c, "progress reset", dto.ProgressResponse{UnlockedLevel: 1})
}
