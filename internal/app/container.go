package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/manishadtanii/varalobackendv.0/domain"
	"github.com/manishadtanii/varalobackendv.0/internal/config"
	"github.com/manishadtanii/varalobackendv.0/internal/infrastructure/auth"
	"github.com/manishadtanii/varalobackendv.0/internal/infrastructure/database"
	"github.com/manishadtanii/varalobackendv.0/internal/infrastructure/media"
	"github.com/manishadtanii/varalobackendv.0/internal/infrastructure/notifications"
	"github.com/manishadtanii/varalobackendv.0/internal/infrastructure/repositories"
	"github.com/manishadtanii/varalobackendv.0/internal/logging"
	"github.com/manishadtanii/varalobackendv.0/internal/services"
)

// Container holds all dependencies
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Infrastructure
	DB          *gorm.DB
	RedisClient *redis.Client
	Casbin      *auth.CasbinService

	// Repositories
	UserRepo    domain.UserRepository
	PageRepo    domain.PageRepository
	SectionRepo domain.SectionRepository
	ContactRepo domain.ContactRepository
	PageCache   domain.PageCache

	// Services
	AuditLogger     domain.AuditLogger
	PasswordSvc     domain.PasswordService
	TokenSvc        domain.TokenService
	NotificationSvc domain.NotificationService
	MediaSvc        domain.MediaService
	OTPSvc          domain.OTPService
	AuthSvc         domain.AuthService
	PolicySvc       domain.PolicyService
	PageSvc         domain.PageService
	SectionSvc      domain.SectionService
	ContactSvc      domain.ContactService
	UploadSvc       domain.UploadService
}

// NewContainer opens every backing store and builds the service graph. The
// caller owns the container and must Close it.
func NewContainer(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Container, error) {
	c := &Container{Config: cfg, Logger: log}

	if err := c.initDatabase(); err != nil {
		c.Close()
		return nil, err
	}
	if err := c.initRedis(ctx); err != nil {
		c.Close()
		return nil, err
	}
	if err := c.initPolicies(); err != nil {
		c.Close()
		return nil, err
	}
	c.initRepositories()
	if err := c.initServices(ctx); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

// gormLogLevel keeps SQL statements out of the log unless debugging
func gormLogLevel(level string) logger.LogLevel {
	if strings.EqualFold(level, "debug") {
		return logger.Info
	}
	return logger.Warn
}

func (c *Container) initDatabase() error {
	db, err := database.Open(c.Config.DatabaseDriver, c.Config.DatabaseDSN, gormLogLevel(c.Config.LogLevel))
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	c.DB = db

	if err := database.AutoMigrate(db); err != nil {
		return err
	}
	return nil
}

// initRedis connects the page cache. Without REDIS_ADDR pages are read
// straight from the database.
func (c *Container) initRedis(ctx context.Context) error {
	if !c.Config.UseRedisCache() {
		c.PageCache = repositories.NoopPageCache{}
		c.Logger.Info("page cache disabled")
		return nil
	}
	client, err := database.OpenRedis(ctx, c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB)
	if err != nil {
		return err
	}
	c.RedisClient = client
	c.PageCache = repositories.NewPageCache(client, c.Config.PageCacheTTL)
	return nil
}

func (c *Container) initPolicies() error {
	cas, err := auth.NewCasbinService(c.DB)
	if err != nil {
		return err
	}
	seeded, err := cas.SeedDefaults()
	if err != nil {
		return err
	}
	if seeded {
		c.Logger.Info("casbin: seeded default policies")
	}
	c.Casbin = cas
	return nil
}

func (c *Container) initRepositories() {
	c.UserRepo = repositories.NewUserRepository(c.DB)
	c.PageRepo = repositories.NewPageRepository(c.DB)
	c.SectionRepo = repositories.NewSectionRepository(c.DB)
	c.ContactRepo = repositories.NewContactRepository(c.DB)
}

func (c *Container) initServices(ctx context.Context) error {
	cfg := c.Config

	c.AuditLogger = logging.NewAuditLogger(c.Logger)
	c.PasswordSvc = auth.NewPasswordService(cfg.BcryptCost)
	c.TokenSvc = auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, auth.TokenTTLs{
		Access:            cfg.AccessTokenTTL,
		LoginSession:      cfg.LoginSessionTTL,
		ChangePasswordOTP: cfg.ChangePasswordOTPTTL,
		ChangePassword:    cfg.ChangePasswordTokenTTL,
		ResetPassword:     cfg.ResetPasswordTokenTTL,
	})

	notifier, err := notifications.New(notifications.Options{
		Provider:         strings.ToLower(cfg.NotifyProvider),
		SMTPHost:         cfg.SMTPHost,
		SMTPPort:         cfg.SMTPPort,
		SMTPUsername:     cfg.SMTPUsername,
		SMTPPassword:     cfg.SMTPPassword,
		MailerSendAPIKey: cfg.MailerSendAPIKey,
		From:             cfg.MailFrom,
		FromName:         cfg.MailFromName,
		ValidFor:         cfg.OTPTTL,
	}, c.Logger)
	if err != nil {
		return fmt.Errorf("notifications: %w", err)
	}
	c.NotificationSvc = notifier

	mediaSvc, err := media.New(ctx, media.Options{
		Provider:            cfg.MediaProvider,
		CloudinaryCloudName: cfg.CloudinaryCloudName,
		CloudinaryAPIKey:    cfg.CloudinaryAPIKey,
		CloudinaryAPISecret: cfg.CloudinaryAPISecret,
		AWSRegion:           cfg.AWSRegion,
		AWSAccessKeyID:      cfg.AWSAccessKeyID,
		AWSSecretAccessKey:  cfg.AWSSecretAccessKey,
		S3Bucket:            cfg.S3Bucket,
		S3PublicBaseURL:     cfg.S3PublicBaseURL,
	})
	if err != nil {
		return fmt.Errorf("media: %w", err)
	}
	c.MediaSvc = mediaSvc

	c.OTPSvc = services.NewOTPService(c.NotificationSvc, c.UserRepo, services.OTPConfig{
		TTL:         cfg.OTPTTL,
		MaxAttempts: cfg.OTPMaxAttempts,
	})
	c.AuthSvc = services.NewAuthService(c.UserRepo, c.PasswordSvc, c.TokenSvc, c.OTPSvc, c.AuditLogger)
	c.PolicySvc = services.NewPolicyService(c.Casbin.E)

	c.PageSvc = services.NewPageService(c.PageRepo, c.SectionRepo, c.PageCache, c.Logger)
	c.SectionSvc = services.NewSectionService(c.SectionRepo, c.MediaSvc, c.PageCache, c.AuditLogger, c.Logger, services.SectionConfig{
		MediaRoot:      cfg.MediaRootFolder,
		MaxContentSize: cfg.MaxContentSize,
	})
	c.ContactSvc = services.NewContactService(c.ContactRepo, c.MediaSvc, c.AuditLogger, cfg.MediaRootFolder)
	c.UploadSvc = services.NewUploadService(c.MediaSvc, c.Logger, cfg.MediaRootFolder)
	return nil
}

// Close releases the Redis and database connections
func (c *Container) Close() error {
	if c.RedisClient != nil {
		c.RedisClient.Close()
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return nil
}
