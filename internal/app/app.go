package app

import (
	"fmt"

	"accomform_backend/database"
	"accomform_backend/internal/config"
	"accomform_backend/internal/email"
	"accomform_backend/internal/handlers"
	"accomform_backend/internal/logger"
	"accomform_backend/internal/repositories"
	"accomform_backend/internal/routes"
	"accomform_backend/internal/services"
	"accomform_backend/internal/storage"
	"accomform_backend/internal/validator"
	"accomform_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func Run() {
	// Missing .env is fine, containers pass real environment variables.
	_ = godotenv.Load()

	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	storageInstance, err := storage.NewStorage(storage.Config{
		Type:             cfg.Storage.Type,
		BasePath:         cfg.Storage.BasePath,
		BaseURL:          cfg.Storage.BaseURL,
		Bucket:           cfg.Storage.Bucket,
		Region:           cfg.Storage.Region,
		AccessKey:        cfg.Storage.AccessKey,
		SecretKey:        cfg.Storage.SecretKey,
		Endpoint:         cfg.Storage.Endpoint,
		ConnectionString: cfg.Storage.ConnectionString,
		Container:        cfg.Storage.Container,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	emailProvider := newEmailProvider(cfg)

	repo := repositories.NewSubmissionRepository(gormDB)
	verifier := services.NewVerificationService(cfg.Verification.TokenLength, cfg.Verification.TokenExpiryMinutes)
	renderer := services.NewPDFService()
	notifier := services.NewNotifierService(emailProvider, storageInstance,
		cfg.Email.CompanyEmail, cfg.Email.FromName, cfg.Email.FromEmail)
	vld := validator.New()
	formService := services.NewFormService(repo, verifier, renderer, notifier, vld,
		cfg.Verification.ResendCooldownSecs)
	captchaService := services.NewCaptchaService(cfg.Captcha.ExpiryMinutes)

	errHandler := &apperrors.GinErrorHandler{Debug: cfg.Server.Env == "development"}
	base := handlers.NewBaseHandler(vld, errHandler)
	formHandler := handlers.NewFormHandler(base, formService, captchaService, cfg.Captcha.Enabled)
	adminHandler := handlers.NewAdminHandler(base, repo)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	ginRouter := gin.New()
	ginRouter.Use(gin.Recovery())

	routes.Setup(ginRouter, formHandler, adminHandler)

	return ginRouter
}

func newEmailProvider(cfg *config.Config) email.Provider {
	smtpCfg := email.SMTPConfig{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
		UseTLS:    cfg.Email.UseTLS,
	}
	if err := smtpCfg.Validate(); err != nil {
		logger.Warn("SMTP not configured, emails will be logged instead of sent", "reason", err)
		return &LogEmailProvider{}
	}

	provider, err := email.NewSMTPSender(smtpCfg)
	if err != nil {
		logger.Fatal("Failed to initialize SMTP sender", "error", err)
	}
	return provider
}
