package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"proposalforge_backend/internal/auth"
	"proposalforge_backend/internal/config"
	"proposalforge_backend/internal/email"
	"proposalforge_backend/internal/handlers"
	"proposalforge_backend/internal/logger"
	"proposalforge_backend/internal/middleware"
	"proposalforge_backend/internal/models"
	"proposalforge_backend/internal/repositories"
	"proposalforge_backend/internal/routes"
	"proposalforge_backend/internal/services"
	"proposalforge_backend/internal/validator"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
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

	if err := gormDB.AutoMigrate(&models.User{}, &models.Proposal{}); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	router := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := router.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	emailProvider := newEmailProvider(cfg)
	serviceContainer := services.NewServiceContainer(gormDB, cfg, emailProvider)
	appHandlers := handlers.NewAppHandlers(serviceContainer, validator.New())

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logging(),
		middleware.CORS(cfg.ClientURL),
	)

	userRepo := repositories.NewUserRepository(gormDB)
	routes.Register(router, appHandlers, userRepo, cfg)

	return router
}

func newEmailProvider(cfg *config.Config) email.Provider {
	if cfg.Email.SMTPHost == "" {
		logger.Warn("SMTP is not configured, welcome emails disabled")
		return email.NopProvider{}
	}
	return email.NewSMTPProvider(email.SMTPConfig{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
	})
}

// seedFirstAdmin creates the bootstrap admin account when none exists.
// Skipped silently when the credentials are not configured.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	if cfg.FirstAdminEmail == "" || cfg.FirstAdminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD not set, skipping admin seeding")
		return nil
	}

	adminEmail := strings.ToLower(cfg.FirstAdminEmail)

	var existing models.User
	err := db.First(&existing, "email = ?", adminEmail).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := auth.HashPassword(cfg.FirstAdminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		Name:         "Admin",
		Email:        adminEmail,
		PasswordHash: hash,
		Role:         models.UserRoleAdmin,
		Plan:         models.PlanPro,
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}
	logger.Info("First admin user created", "email", adminEmail)
	return nil
}
