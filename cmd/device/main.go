package main

import (
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/viniciusmecosta/spe-api/internal/app"
	"github.com/viniciusmecosta/spe-api/internal/shared/apperror"
)

func main() {
	_ = godotenv.Load()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()

	if err := app.RunDeviceConsumer(); err != nil {
		logger.Fatal("run device consumer failed", zap.Error(err))
	}
}
