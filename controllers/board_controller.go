package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lotbones1-code/productv/analytics"
	"github.com/lotbones1-code/productv/config"
	"github.com/lotbones1-code/productv/middleware"
	"github.com/lotbones1-code/productv/models"
	"github.com/lotbones1-code/productv/store"
	"github.com/lotbones1-code/productv/utils"
)

// BoardController renders the personal dashboard, the public board and user
// profiles.
type BoardController struct {
	store     *store.Store
	analytics *analytics.Service
	render    *utils.Renderer
}

// NewBoardController creates a new controller instance.
func NewBoardController(st *store.Store, svc *analytics.Service, render *utils.Renderer) *BoardController {
	return &BoardController{store: st, analytics: svc, render: render}
}

// Home redirects to the public board.
func (b *BoardController) Home(ctx *gin.Context) {
	ctx.Redirect(http.StatusFound, "/public")
}

type dashboardView struct {
	Today   string
	Checkin *models.CheckIn
	Recent  []models.ResearchEntry
}

// Dashboard shows today's check-in state and the last 7 days of the session
// user's research.
func (b *BoardController) Dashboard(ctx *gin.Context) {
	user, ok := middleware.SessionUser(ctx)
	if !ok {
		ctx.Redirect(http.StatusFound, "/login")
		return
	}

	today := utils.CurrentDay()
	checkin, err := b.store.Checkin(user.ID, today)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.Sugar.Errorw("dashboard check-in load failed", "error", err)
		ctx.String(http.StatusInternalServerError, "load failed")
		return
	}

	recent, err := b.store.ResearchForUser(user.ID, 7)
	if err != nil {
		utils.Sugar.Errorw("dashboard research load failed", "error", err)
		ctx.String(http.StatusInternalServerError, "load failed")
		return
	}

	b.render.Render(ctx, http.StatusOK, "dashboard.html", page(ctx, "Dashboard", dashboardView{
		Today:   today,
		Checkin: checkin,
		Recent:  recent,
	}))
}

type publicView struct {
	Stats      []*analytics.UserStats
	Feed       []store.FeedItem
	FilterUser string
	RangeDays  int
}

var allowedRanges = map[int]bool{7: true, 30: true, 90: true}

// PublicBoard renders the aggregate dashboard for all users.
func (b *BoardController) PublicBoard(ctx *gin.Context) {
	users, err := b.store.AllUsers()
	if err != nil {
		utils.Sugar.Errorw("public board user load failed", "error", err)
		ctx.String(http.StatusInternalServerError, "load failed")
		return
	}

	stats := make([]*analytics.UserStats, 0, len(users))
	for _, user := range users {
		st, err := b.analytics.UserStats(user)
		if err != nil {
			utils.Sugar.Errorw("public board stats failed", "user", user.Name, "error", err)
			ctx.String(http.StatusInternalServerError, "load failed")
			return
		}
		stats = append(stats, st)
	}

	filterUser := ctx.DefaultQuery("user", "All")
	rangeDays, _ := strconv.Atoi(ctx.Query("range"))
	if !allowedRanges[rangeDays] {
		rangeDays = 30
	}

	feed, err := b.analytics.RecentFeed(filterUser, rangeDays, config.Get().FeedLimit)
	if err != nil {
		utils.Sugar.Errorw("public board feed failed", "error", err)
		ctx.String(http.StatusInternalServerError, "load failed")
		return
	}

	b.render.Render(ctx, http.StatusOK, "public.html", page(ctx, "Public Dashboard", publicView{
		Stats:      stats,
		Feed:       feed,
		FilterUser: filterUser,
		RangeDays:  rangeDays,
	}))
}

type profileView struct {
	Stats *analytics.UserStats
	Feed  []store.FeedItem
}

// Profile renders a per-user public page; unknown names get the 404 view.
func (b *BoardController) Profile(ctx *gin.Context) {
	user, err := b.store.UserByName(ctx.Param("name"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			b.NotFound(ctx)
			return
		}
		utils.Sugar.Errorw("profile user load failed", "error", err)
		ctx.String(http.StatusInternalServerError, "load failed")
		return
	}

	stats, err := b.analytics.UserStats(*user)
	if err != nil {
		utils.Sugar.Errorw("profile stats failed", "user", user.Name, "error", err)
		ctx.String(http.StatusInternalServerError, "load failed")
		return
	}

	feed, err := b.analytics.RecentFeed(user.Name, 90, config.Get().FeedLimit)
	if err != nil {
		utils.Sugar.Errorw("profile feed failed", "user", user.Name, "error", err)
		ctx.String(http.StatusInternalServerError, "load failed")
		return
	}

	b.render.Render(ctx, http.StatusOK, "user.html", page(ctx, user.Name+" Profile", profileView{
		Stats: stats,
		Feed:  feed,
	}))
}

// NotFound renders the 404 page; unmatched API paths get JSON instead.
func (b *BoardController) NotFound(ctx *gin.Context) {
	if strings.HasPrefix(ctx.Request.URL.Path, "/api/") {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
		return
	}
	b.render.Render(ctx, http.StatusNotFound, "notfound.html", page(ctx, "Not found", nil))
}
