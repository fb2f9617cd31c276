package main

import (
	"github.com/joho/godotenv"

	"github.com/chicknext/chicknext/config"
	"github.com/chicknext/chicknext/models"
	"github.com/chicknext/chicknext/routes"
	"github.com/chicknext/chicknext/utils"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db, err := config.OpenDatabase(cfg,
		&models.Admin{},
		&models.Product{},
		&models.LoginRecord{},
		&models.OrphanFile{},
	)
	if err != nil {
		utils.Sugar.Fatalf("database init failed: %v", err)
	}

	store, err := utils.NewUploadStore(cfg.UploadsDir, db)
	if err != nil {
		utils.Sugar.Fatalf("upload store init failed: %v", err)
	}

	rdb := utils.NewRedisClient(cfg)
	sessions := utils.NewSessionStore(rdb, utils.SessionTTL)
	captcha := utils.NewRecaptchaVerifier(cfg.RecaptchaSecret, cfg.RecaptchaVerifyURL)
	creds := utils.NewBcryptVerifier()

	r := routes.SetupAPIRouter(cfg, db, store, sessions, captcha, creds)

	utils.Sugar.Infof("starting api server on port %s (graceful)", cfg.APIPort)
	if err := utils.GraceServer(":"+cfg.APIPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
