package app

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fmcmkdict/LMA-App/internal/audit"
	"github.com/fmcmkdict/LMA-App/internal/auth"
	"github.com/fmcmkdict/LMA-App/internal/balance"
	"github.com/fmcmkdict/LMA-App/internal/calendar"
	"github.com/fmcmkdict/LMA-App/internal/department"
	"github.com/fmcmkdict/LMA-App/internal/employee"
	"github.com/fmcmkdict/LMA-App/internal/leave"
	"github.com/fmcmkdict/LMA-App/internal/leavetype"
	"github.com/fmcmkdict/LMA-App/internal/messaging/kafka"
	"github.com/fmcmkdict/LMA-App/internal/middleware"
	"github.com/fmcmkdict/LMA-App/internal/rbac"
	"github.com/fmcmkdict/LMA-App/internal/shared/counter"
	"github.com/fmcmkdict/LMA-App/internal/unit"
)

// RelayRunner is what the worker binary needs from the outbox relay.
type RelayRunner interface {
	Run(ctx context.Context)
}

func registerModules(router *gin.Engine, db *gorm.DB, rdb *redis.Client, logger *zap.Logger) (RelayRunner, error) {
	enforcer, err := rbac.NewEnforcer()
	if err != nil {
		return nil, err
	}

	router.Use(middleware.RequestID())
	router.Use(middleware.ContextLogger(logger))
	router.Use(middleware.RateLimitByIP(50, 100))

	// Repositories
	deptRepo := department.NewRepository(db)
	unitRepo := unit.NewRepository(db)
	empRepo := employee.NewRepository(db)
	leaveTypeRepo := leavetype.NewRepository(db)
	holidayRepo := calendar.NewRepository(db)
	balanceRepo := balance.NewRepository(db)
	leaveRepo := leave.NewRepository(db)
	auditRepo := audit.NewRepository(db)
	counterRepo := counter.NewRepository(db)
	outboxRepo := kafka.NewOutboxRepository(db)

	// Services
	deptSvc := department.NewService(db, deptRepo)
	unitSvc := unit.NewService(db, unitRepo, deptRepo)
	auditSvc := audit.NewService(auditRepo, logger)
	empSvc := employee.NewService(db, empRepo, deptRepo, unitRepo, auditRepo, outboxRepo, logger)
	authSvc := auth.NewService(empRepo, auditSvc, logger)
	leaveTypeSvc := leavetype.NewService(db, leaveTypeRepo)
	calendarSvc := calendar.NewService(holidayRepo, logger)
	balanceSvc := balance.NewService(db, balanceRepo, leaveTypeRepo, rdb, logger)
	leaveSvc := leave.NewService(db, leaveRepo, leaveTypeRepo, empRepo, calendarSvc, balanceSvc, counterRepo, outboxRepo, logger)

	// Routes
	api := router.Group("/api/v1")
	auth.RegisterRoutes(api, auth.NewHandler(authSvc))
	employee.RegisterRoutes(api, employee.NewHandler(empSvc), enforcer)
	department.RegisterRoutes(api, department.NewHandler(deptSvc), enforcer)
	unit.RegisterRoutes(api, unit.NewHandler(unitSvc), enforcer)
	leavetype.RegisterRoutes(api, leavetype.NewHandler(leaveTypeSvc), enforcer)
	calendar.RegisterRoutes(api, calendar.NewHandler(calendarSvc), enforcer)
	balance.RegisterRoutes(api, balance.NewHandler(balanceSvc), enforcer)
	leave.RegisterRoutes(api, leave.NewHandler(leaveSvc), enforcer, rdb)
	audit.RegisterRoutes(api, audit.NewHandler(auditSvc), enforcer)

	brokers := strings.Split(envOr("KAFKA_BROKERS", "localhost:9092"), ",")
	publisher := kafka.NewPublisher(brokers, logger)
	relay := kafka.NewRelay(outboxRepo, publisher, logger)

	return relay, nil
}
