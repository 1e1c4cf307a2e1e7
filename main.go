package main

import (
	"github.com/lotbones1-code/productv/config"
	"github.com/lotbones1-code/productv/models"
	"github.com/lotbones1-code/productv/routes"
	"github.com/lotbones1-code/productv/store"
	"github.com/lotbones1-code/productv/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(&models.User{}, &models.CheckIn{}, &models.ResearchEntry{}, &models.AuditLogEntry{})

	// The two tracked users exist from first boot; reruns are no-ops.
	if err := store.New(db).Seed(cfg.UserNames); err != nil {
		utils.Sugar.Fatalf("user seeding failed: %v", err)
	}

	r := routes.SetupRouter(db)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
