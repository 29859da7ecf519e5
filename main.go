package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/vialtech/rutalerta/config"
	"github.com/vialtech/rutalerta/db"
	"github.com/vialtech/rutalerta/server"
	"github.com/vialtech/rutalerta/services"
	"github.com/vialtech/rutalerta/workers"
)

func main() {
	logger := logrus.New()

	conf, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("loading config")
	}
	if conf.Env == "prod" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	gormDB := db.GetDB(conf)
	authRepo := db.NewAuthRepo(gormDB)
	userRepo := db.NewUserRepo(gormDB)
	reportRepo := db.NewReportRepo(gormDB)
	voteRepo := db.NewVoteRepo(gormDB)
	archiveRepo := db.NewArchiveRepo(gormDB)
	fixedPointRepo := db.NewFixedPointRepo(gormDB)

	authService := services.NewAuthService(authRepo, conf)
	reportService := services.NewReportService(reportRepo, conf)
	voteService := services.NewVoteService(voteRepo, authRepo, conf)
	userService := services.NewUserService(userRepo, authRepo, conf)
	fixedPointService := services.NewFixedPointService(fixedPointRepo, conf)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hub := server.NewHub(logger)
	go hub.Run()

	archiver := workers.NewArchiver(archiveRepo, conf.SweepInterval, logger)
	go archiver.Run(ctx)

	s := &server.Server{
		Config:            conf,
		Logger:            logger,
		AuthRepository:    authRepo,
		AuthService:       authService,
		ReportService:     reportService,
		VoteService:       voteService,
		UserService:       userService,
		FixedPointService: fixedPointService,
		Hub:               hub,
	}

	if err := s.Start(ctx); err != nil {
		logger.WithError(err).Fatal("server exited")
	}
}
