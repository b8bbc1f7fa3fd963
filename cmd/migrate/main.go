package main

import (
	"github.com/sirupsen/logrus"

	"loanmarket-api/internal/config"
	"loanmarket-api/internal/infrastructure/db"
)

func main() {
	cfg := config.Load()

	gormDB, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		logrus.WithError(err).Fatal("mysql connection failed")
	}

	if err := db.Migrate(gormDB); err != nil {
		logrus.WithError(err).Fatal("migration failed")
	}
	logrus.Info("migration complete")
}
