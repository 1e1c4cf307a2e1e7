package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lotbones1-code/productv/middleware"
	"github.com/lotbones1-code/productv/store"
	"github.com/lotbones1-code/productv/utils"
)

const maxNoteLen = 2000

// CheckinController records daily check-ins.
type CheckinController struct {
	store *store.Store
}

// NewCheckinController creates a new controller instance.
func NewCheckinController(st *store.Store) *CheckinController {
	return &CheckinController{store: st}
}

// Submit upserts today's check-in for the session user. Repeating the
// check-in on the same day overwrites the note, never duplicates the row.
func (c *CheckinController) Submit(ctx *gin.Context) {
	user, ok := middleware.SessionUser(ctx)
	if !ok {
		ctx.Redirect(http.StatusFound, "/login")
		return
	}

	today := utils.CurrentDay()
	note := utils.Truncate(utils.Sanitize(strings.TrimSpace(ctx.PostForm("note"))), maxNoteLen)

	saved, err := c.store.UpsertCheckin(user.ID, today, note)
	if err != nil {
		utils.Sugar.Errorw("check-in upsert failed", "user", user.Name, "error", err)
		ctx.String(http.StatusInternalServerError, "check-in failed")
		return
	}

	if err := c.store.WriteAudit(&user.ID, "checkin.upsert", "checkin", saved.ID, auditMeta(ctx, map[string]interface{}{"day": today})); err != nil {
		utils.Sugar.Errorw("audit write failed", "action", "checkin.upsert", "error", err)
	}

	utils.SetFlash(ctx, "success", "Check-in recorded.")
	ctx.Redirect(http.StatusFound, "/dashboard")
}
