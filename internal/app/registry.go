package app

import (
	"time"

	"github.com/gin-gonic/gin"
	kafkago "github.com/segmentio/kafka-go"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/viniciusmecosta/spe-api/internal/adjustment"
	"github.com/viniciusmecosta/spe-api/internal/anomaly"
	"github.com/viniciusmecosta/spe-api/internal/audit"
	"github.com/viniciusmecosta/spe-api/internal/biometric"
	"github.com/viniciusmecosta/spe-api/internal/messaging/kafka/producer"
	"github.com/viniciusmecosta/spe-api/internal/middleware"
	"github.com/viniciusmecosta/spe-api/internal/payrollperiod"
	"github.com/viniciusmecosta/spe-api/internal/punch"
	"github.com/viniciusmecosta/spe-api/internal/rbac"
	"github.com/viniciusmecosta/spe-api/internal/schedule"
	"github.com/viniciusmecosta/spe-api/internal/timerecord"
	"github.com/viniciusmecosta/spe-api/internal/user"
	"github.com/viniciusmecosta/spe-api/internal/workhour"
)

func registerModules(
	router *gin.Engine,
	gormDB *gorm.DB,
	kafkaWriter *kafkago.Writer,
	loc *time.Location,
	jwtSecret string,
) error {
	router.Use(middleware.RequestID())
	router.Use(middleware.RateLimitByIP(rate.Limit(20), 40))

	// --- Repositories ---
	userRepo := user.NewRepository(gormDB)
	auditRepo := audit.NewRepository(gormDB)
	scheduleRepo := schedule.NewRepository(gormDB)
	payrollRepo := payrollperiod.NewRepository(gormDB)
	timeRecordRepo := timerecord.NewRepository(gormDB)
	adjustmentRepo := adjustment.NewRepository(gormDB)
	biometricRepo := biometric.NewRepository(gormDB)

	// --- RBAC Core ---
	rbacService, err := rbac.NewService()
	if err != nil {
		return err
	}

	// --- Services ---
	devicePublisher := producer.NewDevicePublisher(kafkaWriter)
	auditService := audit.NewService(auditRepo)
	userService := user.NewService(userRepo, jwtSecret)
	scheduleService := schedule.NewService(scheduleRepo)
	payrollService := payrollperiod.NewService(payrollRepo, auditService, time.Now)
	timeRecordService := timerecord.NewService(timeRecordRepo, payrollService, auditService, loc, time.Now)
	adjustmentService := adjustment.NewService(gormDB, adjustmentRepo, timeRecordRepo, payrollService, auditService, loc)
	anomalyService := anomaly.NewService(timeRecordRepo, userRepo, loc, time.Now)
	workHourService := workhour.NewService(timeRecordRepo, scheduleRepo, userRepo, adjustmentService, loc, time.Now)
	biometricService := biometric.NewService(biometricRepo, userRepo, devicePublisher)

	// --- Handlers ---
	userHandler := user.NewHandler(userService)
	auditHandler := audit.NewHandler(auditService)
	scheduleHandler := schedule.NewHandler(scheduleService)
	payrollHandler := payrollperiod.NewHandler(payrollService)
	timeRecordHandler := timerecord.NewHandler(timeRecordService, loc)
	adjustmentHandler := adjustment.NewHandler(adjustmentService)
	anomalyHandler := anomaly.NewHandler(anomalyService)
	workHourHandler := workhour.NewHandler(workHourService, loc)
	biometricHandler := biometric.NewHandler(biometricService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		user.RegisterRoutes(api, userHandler, rbacService, jwtSecret)
		audit.RegisterRoutes(api, auditHandler, rbacService, jwtSecret)
		schedule.RegisterRoutes(api, scheduleHandler, rbacService, jwtSecret)
		payrollperiod.RegisterRoutes(api, payrollHandler, rbacService, jwtSecret)
		timerecord.RegisterRoutes(api, timeRecordHandler, rbacService, jwtSecret)
		adjustment.RegisterRoutes(api, adjustmentHandler, rbacService, jwtSecret)
		anomaly.RegisterRoutes(api, anomalyHandler, rbacService, jwtSecret)
		workhour.RegisterRoutes(api, workHourHandler, rbacService, jwtSecret)
		biometric.RegisterRoutes(api, biometricHandler, rbacService, jwtSecret)
	}

	return nil
}

// newPunchService assembles the ingestion pipeline shared by the device
// consumer. Kept here so the HTTP app and the consumer binary wire the
// same dependencies.
func newPunchService(
	gormDB *gorm.DB,
	deduper punch.Deduper,
	loc *time.Location,
) punch.Service {
	biometricRepo := biometric.NewRepository(gormDB)
	userRepo := user.NewRepository(gormDB)
	timeRecordRepo := timerecord.NewRepository(gormDB)
	return punch.NewService(deduper, biometricRepo, userRepo, timeRecordRepo, loc, time.Now)
}
