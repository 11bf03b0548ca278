package app

import (
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/viniciusmecosta/spe-api/internal/shared/connection"
)

const defaultTimezone = "America/Fortaleza"

// loadLocation resolves the business timezone. Every timestamp the device
// sends is epoch seconds; every date the API exposes is local to this zone.
func loadLocation() (*time.Location, error) {
	tz := os.Getenv("TIMEZONE")
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", tz, err)
	}
	return loc, nil
}

func BuildApp(router *gin.Engine) error {
	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}
	kafkaWriter, err := connection.ConnectKafkaWithRetry(kafkaBroker, 5)
	if err != nil {
		return err
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	loc, err := loadLocation()
	if err != nil {
		return err
	}

	return registerModules(router, gormDB, kafkaWriter, loc, jwtSecret)
}
