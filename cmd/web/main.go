package main

import (
	"github.com/joho/godotenv"

	"github.com/chicknext/chicknext/config"
	"github.com/chicknext/chicknext/routes"
	"github.com/chicknext/chicknext/utils"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	// The web process only needs the shared session store; all data access
	// goes through the API service.
	rdb := utils.NewRedisClient(cfg)
	sessions := utils.NewSessionStore(rdb, utils.SessionTTL)

	r := routes.SetupWebRouter(cfg, sessions)

	utils.Sugar.Infof("starting web server on port %s (graceful)", cfg.WebPort)
	if err := utils.GraceServer(":"+cfg.WebPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
