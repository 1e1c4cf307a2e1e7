package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lotbones1-code/productv/middleware"
	"github.com/lotbones1-code/productv/store"
	"github.com/lotbones1-code/productv/utils"
)

const (
	maxTitleLen   = 255
	maxSummaryLen = 5000
	maxTickersLen = 255

	defaultConfidence = 3
	minConfidence     = 1
	maxConfidence     = 5
	minMinutes        = 0
	maxMinutes        = 1440
)

// ResearchController manages create/edit/delete of research entries.
type ResearchController struct {
	store *store.Store
}

// NewResearchController creates a new controller instance.
func NewResearchController(st *store.Store) *ResearchController {
	return &ResearchController{store: st}
}

// parseForm normalizes the research form fields. Title and summary come back
// trimmed; the caller rejects the request when either is empty.
func parseForm(ctx *gin.Context) store.ResearchInput {
	day := strings.TrimSpace(ctx.PostForm("day"))
	if day == "" {
		day = utils.CurrentDay()
	}
	return store.ResearchInput{
		Day:          day,
		Title:        utils.Truncate(utils.Sanitize(strings.TrimSpace(ctx.PostForm("title"))), maxTitleLen),
		Summary:      utils.Truncate(utils.Sanitize(strings.TrimSpace(ctx.PostForm("summary"))), maxSummaryLen),
		Tickers:      utils.Truncate(utils.ParseTickers(ctx.PostForm("tickers")), maxTickersLen),
		Links:        utils.ParseLinks(ctx.PostForm("links")),
		Confidence:   utils.ClampInt(ctx.PostForm("confidence"), defaultConfidence, minConfidence, maxConfidence),
		MinutesSpent: utils.ClampInt(ctx.PostForm("minutes_spent"), minMinutes, minMinutes, maxMinutes),
	}
}

// ownedEntryID parses :id and verifies the entry belongs to the session
// user. Non-owned and non-existent ids fail identically so the response
// leaks nothing about existence.
func (r *ResearchController) ownedEntryID(ctx *gin.Context, userID uint) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		utils.SetFlash(ctx, "error", "Invalid request.")
		ctx.Redirect(http.StatusFound, "/dashboard")
		return 0, false
	}
	entry, err := r.store.ResearchByID(uint(id))
	if err != nil || entry.UserID != userID {
		utils.SetFlash(ctx, "error", "Not allowed.")
		ctx.Redirect(http.StatusFound, "/dashboard")
		return 0, false
	}
	return uint(id), true
}

// Create stores a new research entry for the session user.
func (r *ResearchController) Create(ctx *gin.Context) {
	user, ok := middleware.SessionUser(ctx)
	if !ok {
		ctx.Redirect(http.StatusFound, "/login")
		return
	}

	in := parseForm(ctx)
	if in.Title == "" || in.Summary == "" {
		utils.SetFlash(ctx, "error", "Title and summary are required.")
		ctx.Redirect(http.StatusFound, "/dashboard")
		return
	}

	entry, err := r.store.CreateResearch(user.ID, in)
	if err != nil {
		utils.Sugar.Errorw("research create failed", "user", user.Name, "error", err)
		ctx.String(http.StatusInternalServerError, "write failed")
		return
	}

	if err := r.store.WriteAudit(&user.ID, "research.create", "research", entry.ID, auditMeta(ctx, map[string]interface{}{"day": in.Day})); err != nil {
		utils.Sugar.Errorw("audit write failed", "action", "research.create", "error", err)
	}

	utils.SetFlash(ctx, "success", "Research entry added.")
	ctx.Redirect(http.StatusFound, "/dashboard")
}

// Update rewrites an entry the session user owns.
func (r *ResearchController) Update(ctx *gin.Context) {
	user, ok := middleware.SessionUser(ctx)
	if !ok {
		ctx.Redirect(http.StatusFound, "/login")
		return
	}
	entryID, ok := r.ownedEntryID(ctx, user.ID)
	if !ok {
		return
	}

	in := parseForm(ctx)
	if in.Title == "" || in.Summary == "" {
		utils.SetFlash(ctx, "error", "Title and summary are required.")
		ctx.Redirect(http.StatusFound, "/dashboard")
		return
	}

	// The store gates on (id, user_id) again; zero rows means the entry
	// vanished or changed hands between the check and the write.
	updated, err := r.store.UpdateResearch(entryID, user.ID, in)
	if err != nil {
		utils.Sugar.Errorw("research update failed", "user", user.Name, "entry", entryID, "error", err)
		ctx.String(http.StatusInternalServerError, "write failed")
		return
	}
	if updated {
		if err := r.store.WriteAudit(&user.ID, "research.edit", "research", entryID, auditMeta(ctx, nil)); err != nil {
			utils.Sugar.Errorw("audit write failed", "action", "research.edit", "error", err)
		}
		utils.SetFlash(ctx, "success", "Research entry updated.")
	} else {
		utils.SetFlash(ctx, "error", "Unable to update entry.")
	}
	ctx.Redirect(http.StatusFound, "/dashboard")
}

// Delete removes an entry the session user owns.
func (r *ResearchController) Delete(ctx *gin.Context) {
	user, ok := middleware.SessionUser(ctx)
	if !ok {
		ctx.Redirect(http.StatusFound, "/login")
		return
	}
	entryID, ok := r.ownedEntryID(ctx, user.ID)
	if !ok {
		return
	}

	deleted, err := r.store.DeleteResearch(entryID, user.ID)
	if err != nil {
		utils.Sugar.Errorw("research delete failed", "user", user.Name, "entry", entryID, "error", err)
		ctx.String(http.StatusInternalServerError, "write failed")
		return
	}
	if deleted {
		if err := r.store.WriteAudit(&user.ID, "research.delete", "research", entryID, auditMeta(ctx, nil)); err != nil {
			utils.Sugar.Errorw("audit write failed", "action", "research.delete", "error", err)
		}
		utils.SetFlash(ctx, "success", "Entry removed.")
	} else {
		utils.SetFlash(ctx, "error", "Unable to remove entry.")
	}
	ctx.Redirect(http.StatusFound, "/dashboard")
}
