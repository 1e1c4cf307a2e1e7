package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lotbones1-code/productv/analytics"
	"github.com/lotbones1-code/productv/store"
	"github.com/lotbones1-code/productv/utils"
)

// StatsController serves the JSON stats API.
type StatsController struct {
	store     *store.Store
	analytics *analytics.Service
}

// NewStatsController creates a new controller instance.
func NewStatsController(st *store.Store, svc *analytics.Service) *StatsController {
	return &StatsController{store: st, analytics: svc}
}

type userStatsPayload struct {
	Name         string               `json:"name"`
	Streak       int                  `json:"streak"`
	Completion7  analytics.Completion `json:"completion7"`
	Completion30 analytics.Completion `json:"completion30"`
	Completion90 analytics.Completion `json:"completion90"`
}

// GetStats returns live streak and completion figures for every user.
func (s *StatsController) GetStats(ctx *gin.Context) {
	users, err := s.store.AllUsers()
	if err != nil {
		utils.Sugar.Errorw("stats user load failed", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "load failed"})
		return
	}

	data := make([]userStatsPayload, 0, len(users))
	for _, user := range users {
		streak, err := s.analytics.Streak(user.ID)
		if err != nil {
			utils.Sugar.Errorw("stats streak failed", "user", user.Name, "error", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "load failed"})
			return
		}
		c7, err := s.analytics.Completion(user.ID, 7)
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "load failed"})
			return
		}
		c30, err := s.analytics.Completion(user.ID, 30)
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "load failed"})
			return
		}
		c90, err := s.analytics.Completion(user.ID, 90)
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "load failed"})
			return
		}
		data = append(data, userStatsPayload{
			Name:         user.Name,
			Streak:       streak,
			Completion7:  c7,
			Completion30: c30,
			Completion90: c90,
		})
	}

	ctx.JSON(http.StatusOK, gin.H{
		"generated_at": utils.NowTimestamp(),
		"data":         data,
	})
}
