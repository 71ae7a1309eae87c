package controller

import (
	"github.com/gin-gonic/gin"

	"wealthy-cats/dto"
	"wealthy-cats/game"
	"wealthy-cats/middleware"
	"wealthy-cats/service"
)

func (ctl *Controller) CreateSession(c *gin.Context) {
	var req dto.CreateSessionRequest
	// an empty body means defaults
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c)
			return
		}
	}
	info, err := ctl.sessions.Create(c.Request.Context(), service.CreateOptions{Seed: req.Seed, Level: req.Level})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "session created", dto.CreateSessionResponse{SessionID: info.ID, Level: info.Level, Seed: info.Seed})
}

func (ctl *Controller) ListSessions(c *gin.Context) {
	ok(c, "ok", gin.H{"sessions": ctl.sessions.List()})
}

func (ctl *Controller) DeleteSession(c *gin.Context) {
	var req dto.DeleteSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	if err := ctl.sessions.Delete(req.SessionID); err != nil {
		fail(c, err)
		return
	}
	ok(c, "session deleted", nil)
}

func (ctl *Controller) GetSession(c *gin.Context) {
	snap, err := ctl.sessions.Snapshot(c.Request.Context(), c.GetString(middleware.SessionKey))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "ok", snap)
}

// command runs fn on the session and answers with the resulting snapshot.
func (ctl *Controller) command(c *gin.Context, msg string, fn func(*game.Session) error) {
	var snap game.Snapshot
	err := ctl.sessions.Do(c.Request.Context(), c.GetString(middleware.SessionKey), func(g *game.Session) error {
		if err := fn(g); err != nil {
			return err
		}
		snap = g.Snapshot()
		return nil
	})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, msg, snap)
}

func (ctl *Controller) Draw(c *gin.Context) {
	ctl.command(c, "card drawn", (*game.Session).Draw)
}

func (ctl *Controller) Confirm(c *gin.Context) {
	ctl.command(c, "card confirmed", (*game.Session).Confirm)
}

func (ctl *Controller) Skip(c *gin.Context) {
	ctl.command(c, "card skipped", (*game.Session).Skip)
}

func (ctl *Controller) Restart(c *gin.Context) {
	ctl.command(c, "session restarted", func(g *game.Session) error {
		g.Restart()
		return nil
	})
}

func (ctl *Controller) Deposit(c *gin.Context) {
	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	ctl.command(c, "deposit accepted", func(g *game.Session) error { return g.ProvideDeposit(*req.Amount) })
}

func (ctl *Controller) Production(c *gin.Context) {
	var req dto.ProductionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	ctl.command(c, "production accepted", func(g *game.Session) error { return g.ProvideProduction(*req.Slots) })
}

func (ctl *Controller) Order(c *gin.Context) {
	var req dto.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	ctl.command(c, "order selected", func(g *game.Session) error { return g.SelectOrder(req.OrderID) })
}
