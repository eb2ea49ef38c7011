package services

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	log "github.com/sirupsen/logrus"

	"github.com/theramind/journal_api/services/handlers"
	"github.com/theramind/journal_api/shared"
)

type HttpService struct {
	context.DefaultService

	authSvc       *AuthService
	journalSvc    *JournalService
	emotionSvc    *EmotionService
	promptSvc     *PromptService
	backupSvc     *BackupService
	monitoringSvc *MonitoringService

	port   int
	server *fiber.App
}

const HTTP_SVC = "http_svc"

func (svc HttpService) Id() string {
	return HTTP_SVC
}

func (svc *HttpService) Configure(ctx *context.Context) error {
	if port := os.Getenv("HTTP_PORT"); port != "" {
		var err error
		if svc.port, err = strconv.Atoi(port); err != nil {
			return err
		}
	} else {
		svc.port = 8000
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *HttpService) Start() error {
	svc.authSvc = svc.Service(AUTH_SVC).(*AuthService)
	svc.journalSvc = svc.Service(JOURNAL_SVC).(*JournalService)
	svc.emotionSvc = svc.Service(EMOTION_SVC).(*EmotionService)
	svc.promptSvc = svc.Service(PROMPT_SVC).(*PromptService)
	svc.backupSvc = svc.Service(BACKUP_SVC).(*BackupService)
	svc.monitoringSvc, _ = svc.Service(MONITORING_SVC).(*MonitoringService)

	app := fiber.New(fiber.Config{
		ErrorHandler: svc.handleError,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	if svc.monitoringSvc != nil {
		app.Use(MonitoringMiddleware(svc.monitoringSvc))
	}

	app.Get("/ping", svc.ping)

	authHandler := handlers.NewAuthHandler(svc.authSvc)
	journalHandler := handlers.NewJournalHandler(svc.journalSvc)
	insightsHandler := handlers.NewInsightsHandler(svc.journalSvc, svc.promptSvc, svc.backupSvc)
	chatHandler := handlers.NewChatHandler(svc.emotionSvc)

	v1 := app.Group("/api/v1")
	v1.Get("/ping", svc.ping)

	v1.Post("/register", authHandler.Register)
	v1.Post("/login", authHandler.Login)

	protected := v1.Group("", svc.authSvc.RequiredAuth())
	protected.Post("/logout", authHandler.Logout)

	protected.Post("/analyze", journalHandler.Analyze)
	protected.Get("/history", journalHandler.History)
	protected.Get("/entries/:id", journalHandler.GetEntry)
	protected.Get("/stats", journalHandler.Stats)
	protected.Post("/pin", journalHandler.SetPin)
	protected.Post("/pin/verify", journalHandler.VerifyPin)

	protected.Get("/insights/weekly", insightsHandler.Weekly)
	protected.Get("/insights/monthly", insightsHandler.Monthly)
	protected.Get("/prompt", insightsHandler.Prompt)
	protected.Post("/backup", insightsHandler.Backup)
	protected.Get("/backups", insightsHandler.Backups)

	protected.Post("/chat", chatHandler.Chat)

	svc.server = app

	log.WithField("port", svc.port).Info("HTTP server starting")
	return app.Listen(fmt.Sprintf(":%v", svc.port))
}

func (svc *HttpService) Shutdown() {
	if svc.server != nil {
		_ = svc.server.Shutdown()
	}
}

// @Summary Ping
// @Description This endpoint checks the health of the service
// @Tags health
// @Accept  json
// @Produce json
// @Success 200 {object} shared.Response{data=string}
// @Router /ping [get]
func (svc *HttpService) ping(c *fiber.Ctx) error {
	c.Set(fiber.HeaderCacheControl, "max-age=10")

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", "pong")
}

func (svc *HttpService) handleError(c *fiber.Ctx, err error) error {
	if appErr, ok := shared.GetAppError(err); ok {
		return shared.ResponseJSON(c, appErr.StatusCode, appErr.Message, appErr.Data)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return shared.ResponseJSON(c, fiberErr.Code, fiberErr.Message, nil)
	}

	log.WithError(err).Error("Unhandled request error")
	return shared.ResponseInternalError(c, err)
}
