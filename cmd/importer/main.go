package main

import (
	"github.com/sirupsen/logrus"
	"github.com/vialtech/rutalerta/config"
	"github.com/vialtech/rutalerta/db"
	"github.com/vialtech/rutalerta/importer"
)

func main() {
	logger := logrus.New()

	conf, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("loading config")
	}

	gormDB := db.GetDB(conf)
	fixedPointRepo := db.NewFixedPointRepo(gormDB)

	imp := importer.New(fixedPointRepo, conf, logger)
	if err := imp.Run(); err != nil {
		logger.WithError(err).Fatal("import failed")
	}
}
