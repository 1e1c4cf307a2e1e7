package routes

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lotbones1-code/productv/analytics"
	"github.com/lotbones1-code/productv/config"
	"github.com/lotbones1-code/productv/controllers"
	"github.com/lotbones1-code/productv/middleware"
	"github.com/lotbones1-code/productv/store"
	"github.com/lotbones1-code/productv/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	if utils.Logger != nil {
		r.Use(utils.GinLogger(utils.Logger))
		r.Use(utils.GinRecovery(utils.Logger, false))
	} else {
		r.Use(gin.Recovery())
	}

	renderer, err := utils.NewRenderer(cfg.TemplateGlob)
	if err != nil {
		utils.Sugar.Fatalf("template parse failed: %v", err)
	}

	st := store.New(db)
	svc := analytics.New(st)

	authController := controllers.NewAuthController(st, renderer)
	checkinController := controllers.NewCheckinController(st)
	researchController := controllers.NewResearchController(st)
	boardController := controllers.NewBoardController(st, svc, renderer)
	statsController := controllers.NewStatsController(st, svc)

	r.Static("/static", cfg.StaticDir)
	r.Use(middleware.CurrentUser())

	r.GET("/", boardController.Home)
	r.GET("/login", authController.ShowLogin)
	r.POST("/login", middleware.RateLimit(), authController.Login)
	r.POST("/logout", authController.Logout)

	r.GET("/public", boardController.PublicBoard)
	r.GET("/u/:name", boardController.Profile)

	r.GET("/dashboard", middleware.AuthRequired(), boardController.Dashboard)
	r.POST("/checkin", middleware.AuthRequired(), checkinController.Submit)

	research := r.Group("/research", middleware.AuthRequired())
	research.POST("", researchController.Create)
	research.POST("/:id/edit", researchController.Update)
	research.POST("/:id/delete", researchController.Delete)

	api := r.Group("/api")
	api.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET"},
		AllowHeaders:    []string{"Content-Type"},
		MaxAge:          12 * time.Hour,
	}))
	api.GET("/stats", statsController.GetStats)

	r.NoRoute(boardController.NotFound)

	return r
}
