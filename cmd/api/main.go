package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpadp "mata-finance/internal/adapter/http"
	mw "mata-finance/internal/adapter/middleware"
	"mata-finance/internal/adapter/repository/mysql"
	"mata-finance/internal/config"
	"mata-finance/internal/domain/activity"
	"mata-finance/internal/domain/emergency"
	"mata-finance/internal/domain/notice"
	"mata-finance/internal/domain/signal"
	"mata-finance/internal/domain/transaction"
	"mata-finance/internal/domain/user"
	"mata-finance/internal/infrastructure/cache"
	"mata-finance/internal/infrastructure/db"
	decisionuc "mata-finance/internal/usecase/decision"
	emergencyuc "mata-finance/internal/usecase/emergency"
	noticeuc "mata-finance/internal/usecase/notice"
	queueuc "mata-finance/internal/usecase/queue"
	replacementuc "mata-finance/internal/usecase/replacement"
	signaluc "mata-finance/internal/usecase/signal"
	transactionuc "mata-finance/internal/usecase/transaction"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal(err)
	}
	if err := gdb.AutoMigrate(
		&user.User{},
		&transaction.Transaction{},
		&transaction.Item{},
		&transaction.Document{},
		&emergency.Request{},
		&notice.SystemNotice{},
		&notice.UserNoticeExposure{},
		&signal.Signal{},
		&activity.Log{},
	); err != nil {
		log.Fatal(err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}

	txRepo := mysql.NewTransactionRepository(gdb)
	userRepo := mysql.NewUserRepository(gdb)
	noticeRepo := mysql.NewNoticeRepository(gdb)
	exposureRepo := mysql.NewExposureRepository(gdb)
	signalRepo := mysql.NewSignalRepository(gdb)
	activityRepo := mysql.NewActivityRepository(gdb)
	uow := mysql.NewGormUoW(gdb)

	cooldown := time.Duration(cfg.NoticeCooldownHours) * time.Hour

	txHandler := httpadp.NewTransactionHandler(transactionuc.NewUsecase(txRepo, uow))
	decisionHandler := httpadp.NewDecisionHandler(decisionuc.NewUsecase(txRepo, uow))
	replacementHandler := httpadp.NewReplacementHandler(replacementuc.NewUsecase(txRepo, uow))
	queueHandler := httpadp.NewQueueHandler(queueuc.NewService(txRepo, cfg.QueueSLAHours))
	emergencyHandler := httpadp.NewEmergencyHandler(emergencyuc.NewUsecase(txRepo, uow))
	noticeHandler := httpadp.NewNoticeHandler(noticeuc.NewUsecase(noticeRepo, exposureRepo, rdb, cooldown))
	signalHandler := httpadp.NewSignalHandler(signaluc.NewUsecase(signalRepo))
	activityHandler := httpadp.NewActivityHandler(activityRepo)
	h := httpadp.NewHandler()

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	e.GET("/health", h.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("", mw.Auth(userRepo))
	idem := mw.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second)

	admin := mw.RequireRole(user.RoleAdmin)
	approver := mw.RequireRole(user.RoleApprover)

	api.POST("/transactions", txHandler.Create, admin, idem)
	api.GET("/transactions", txHandler.ListMine, admin)
	api.GET("/transactions/:transaction_id", txHandler.Get)
	api.PUT("/transactions/:transaction_id", txHandler.Update, admin, idem)
	api.POST("/transactions/:transaction_id/submit", txHandler.Submit, admin, idem)
	api.POST("/transactions/:transaction_id/replacement", replacementHandler.Create, admin, idem)
	api.POST("/transactions/:transaction_id/emergency", emergencyHandler.Create, admin, idem)
	api.GET("/replacements/pending", replacementHandler.Pending, admin)
	api.GET("/transactions/expiring", txHandler.ExpiringDrafts, admin)

	api.POST("/transactions/:transaction_id/decision", decisionHandler.Decide, approver, idem)
	api.GET("/queue", queueHandler.Queue, approver)
	api.GET("/decisions/mine", decisionHandler.MyDecisions, approver)
	api.GET("/emergencies/pending", emergencyHandler.Pending, approver)

	api.GET("/notices/active", noticeHandler.Active)
	api.POST("/notices/:notice_id/exposure", noticeHandler.RecordExposure, idem)
	api.GET("/notices/history", noticeHandler.History)

	api.POST("/signals", signalHandler.Record, idem)
	api.GET("/signals/:name", signalHandler.Recent)
	api.GET("/activities/mine", activityHandler.Mine)
	api.GET("/activities/:ref", activityHandler.ByRef)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
