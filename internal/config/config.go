package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// MinJWTSecretLength is the shortest signing secret accepted in production
const MinJWTSecretLength = 32

// Config holds the application configuration loaded from environment variables
type Config struct {
	Port   string `env:"PORT" envDefault:"5000"`
	AppEnv string `env:"APP_ENV" envDefault:"development"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	DatabaseDriver string `env:"DATABASE_DRIVER" envDefault:"postgres"`
	DatabaseDSN    string `env:"DATABASE_DSN,required,notEmpty"`

	// Redis backs the page read cache; leave RedisAddr empty to disable it
	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	PageCacheTTL  time.Duration `env:"PAGE_CACHE_TTL" envDefault:"5m"`

	JWTSecret              string        `env:"JWT_SECRET,required,notEmpty"`
	JWTIssuer              string        `env:"JWT_ISSUER" envDefault:"sitecms"`
	AccessTokenTTL         time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"168h"`
	LoginSessionTTL        time.Duration `env:"LOGIN_SESSION_TTL" envDefault:"15m"`
	ChangePasswordOTPTTL   time.Duration `env:"CHANGE_PASSWORD_OTP_TTL" envDefault:"10m"`
	ChangePasswordTokenTTL time.Duration `env:"CHANGE_PASSWORD_TOKEN_TTL" envDefault:"15m"`
	ResetPasswordTokenTTL  time.Duration `env:"RESET_PASSWORD_TOKEN_TTL" envDefault:"15m"`
	BcryptCost             int           `env:"BCRYPT_COST" envDefault:"10"`

	OTPTTL         time.Duration `env:"OTP_TTL" envDefault:"10m"`
	OTPMaxAttempts int           `env:"OTP_MAX_ATTEMPTS" envDefault:"3"`

	MediaProvider       string `env:"MEDIA_PROVIDER" envDefault:"cloudinary"`
	MediaRootFolder     string `env:"MEDIA_ROOT_FOLDER" envDefault:"varalo"`
	CloudinaryCloudName string `env:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `env:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `env:"CLOUDINARY_API_SECRET"`
	AWSRegion           string `env:"AWS_REGION" envDefault:"us-east-1"`
	AWSAccessKeyID      string `env:"AWS_ACCESS_KEY_ID"`
	AWSSecretAccessKey  string `env:"AWS_SECRET_ACCESS_KEY"`
	S3Bucket            string `env:"S3_BUCKET"`
	S3PublicBaseURL     string `env:"S3_PUBLIC_BASE_URL"`

	NotifyProvider   string `env:"NOTIFY_PROVIDER" envDefault:"log"`
	SMTPHost         string `env:"SMTP_HOST"`
	SMTPPort         int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername     string `env:"SMTP_USERNAME"`
	SMTPPassword     string `env:"SMTP_PASSWORD"`
	MailerSendAPIKey string `env:"MAILERSEND_API_KEY"`
	MailFrom         string `env:"MAIL_FROM"`
	MailFromName     string `env:"MAIL_FROM_NAME" envDefault:"Website Admin"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`

	MaxUploadSize  int64 `env:"MAX_UPLOAD_SIZE" envDefault:"10485760"`
	MaxContentSize int   `env:"MAX_CONTENT_SIZE" envDefault:"5242880"`

	AuthRateLimitRPS   float64 `env:"AUTH_RATE_LIMIT_RPS" envDefault:"1"`
	AuthRateLimitBurst int     `env:"AUTH_RATE_LIMIT_BURST" envDefault:"10"`
}

// IsProduction reports whether cookies must be marked Secure
func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// UseRedisCache reports whether a Redis page cache is configured
func (c Config) UseRedisCache() bool {
	return c.RedisAddr != ""
}

// Load reads an optional .env file, parses the environment and validates the result
func Load() (*Config, error) {
	// a missing .env is normal outside local development
	_ = godotenv.Load()
	return Parse()
}

// Parse builds a Config from the current environment only
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints env tags cannot express
func (c Config) Validate() error {
	var errs []error

	switch c.DatabaseDriver {
	case "postgres", "sqlite":
	default:
		errs = append(errs, fmt.Errorf("DATABASE_DRIVER must be postgres or sqlite, got %q", c.DatabaseDriver))
	}

	if c.IsProduction() && len(c.JWTSecret) < MinJWTSecretLength {
		errs = append(errs, fmt.Errorf("JWT_SECRET must be at least %d bytes in production", MinJWTSecretLength))
	}
	if c.OTPMaxAttempts < 1 {
		errs = append(errs, errors.New("OTP_MAX_ATTEMPTS must be positive"))
	}
	if c.OTPTTL <= 0 {
		errs = append(errs, errors.New("OTP_TTL must be positive"))
	}

	switch c.MediaProvider {
	case "cloudinary":
		if c.CloudinaryCloudName == "" || c.CloudinaryAPIKey == "" || c.CloudinaryAPISecret == "" {
			errs = append(errs, errors.New("CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY and CLOUDINARY_API_SECRET are required for the cloudinary media provider"))
		}
	case "s3":
		if c.S3Bucket == "" {
			errs = append(errs, errors.New("S3_BUCKET is required for the s3 media provider"))
		}
	default:
		errs = append(errs, fmt.Errorf("MEDIA_PROVIDER must be cloudinary or s3, got %q", c.MediaProvider))
	}

	switch strings.ToLower(c.NotifyProvider) {
	case "log":
	case "smtp":
		if c.SMTPHost == "" || c.MailFrom == "" {
			errs = append(errs, errors.New("SMTP_HOST and MAIL_FROM are required for the smtp notify provider"))
		}
	case "mailersend":
		if c.MailerSendAPIKey == "" || c.MailFrom == "" {
			errs = append(errs, errors.New("MAILERSEND_API_KEY and MAIL_FROM are required for the mailersend notify provider"))
		}
	default:
		errs = append(errs, fmt.Errorf("NOTIFY_PROVIDER must be log, smtp or mailersend, got %q", c.NotifyProvider))
	}

	return errors.Join(errs...)
}
