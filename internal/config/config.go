package config

import (
	"errors"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	DBDSN      string
	ServerPort string
	AppEnv     string
	AppName    string
	AppVersion string
	APIPrefix  string

	LogLevel  string
	LogFormat string

	AllowedOrigins []string
	MaxRequestBody int64

	Uploads UploadConfig
	Intake  IntakeConfig
	Storage StorageConfig
}

// UploadConfig covers the resume/attachment rules.
type UploadConfig struct {
	Dir               string
	MaxUploadSize     int64
	AllowedFileTypes  []string
	MaxFileNameLength int
}

type IntakeConfig struct {
	MaxApplicationsPerDay  int
	DefaultPageSize        int
	CleanupOrphanedUploads bool
}

// StorageConfig selects the blob backend. Driver is "local" or "s3".
type StorageConfig struct {
	Driver      string
	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3PathStyle bool
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_NAME", "Vetpl")
	v.SetDefault("APP_VERSION", "1.0.0")
	v.SetDefault("API_PREFIX", "/api/v1")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:5174,http://127.0.0.1:5173,http://localhost:3000")
	v.SetDefault("MAX_REQUEST_BODY", 64<<20)

	v.SetDefault("UPLOAD_DIR", "./uploads")
	v.SetDefault("MAX_UPLOAD_SIZE", 5<<20)
	v.SetDefault("ALLOWED_FILE_TYPES", ".pdf, .doc, .docx")
	v.SetDefault("MAX_FILE_NAME_LENGTH", 255)

	v.SetDefault("MAX_APPLICATIONS_PER_DAY", 3)
	v.SetDefault("DEFAULT_PAGE_SIZE", 20)
	v.SetDefault("CLEANUP_ORPHANED_UPLOADS", false)

	v.SetDefault("STORAGE_DRIVER", "local")
	v.SetDefault("S3_REGION", "us-east-1")
	v.SetDefault("S3_USE_PATH_STYLE", true)
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		DBDSN:      v.GetString("DB_DSN"),
		ServerPort: v.GetString("SERVER_PORT"),
		AppEnv:     v.GetString("APP_ENV"),
		AppName:    v.GetString("APP_NAME"),
		AppVersion: v.GetString("APP_VERSION"),
		APIPrefix:  v.GetString("API_PREFIX"),

		LogLevel:  v.GetString("LOG_LEVEL"),
		LogFormat: v.GetString("LOG_FORMAT"),

		AllowedOrigins: splitList(v.GetString("ALLOWED_ORIGINS")),
		MaxRequestBody: v.GetInt64("MAX_REQUEST_BODY"),

		Uploads: UploadConfig{
			Dir:               v.GetString("UPLOAD_DIR"),
			MaxUploadSize:     v.GetInt64("MAX_UPLOAD_SIZE"),
			AllowedFileTypes:  lowerAll(splitList(v.GetString("ALLOWED_FILE_TYPES"))),
			MaxFileNameLength: v.GetInt("MAX_FILE_NAME_LENGTH"),
		},
		Intake: IntakeConfig{
			MaxApplicationsPerDay:  v.GetInt("MAX_APPLICATIONS_PER_DAY"),
			DefaultPageSize:        v.GetInt("DEFAULT_PAGE_SIZE"),
			CleanupOrphanedUploads: v.GetBool("CLEANUP_ORPHANED_UPLOADS"),
		},
		Storage: StorageConfig{
			Driver:      strings.ToLower(v.GetString("STORAGE_DRIVER")),
			S3Endpoint:  v.GetString("S3_ENDPOINT"),
			S3Region:    v.GetString("S3_REGION"),
			S3Bucket:    v.GetString("S3_BUCKET"),
			S3AccessKey: v.GetString("S3_ACCESS_KEY"),
			S3SecretKey: v.GetString("S3_SECRET_KEY"),
			S3PathStyle: v.GetBool("S3_USE_PATH_STYLE"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.DBDSN == "" {
		return errors.New("DB_DSN is not set")
	}
	if c.Uploads.MaxUploadSize <= 0 {
		return errors.New("MAX_UPLOAD_SIZE must be positive")
	}
	if c.Uploads.MaxFileNameLength <= 0 {
		return errors.New("MAX_FILE_NAME_LENGTH must be positive")
	}
	if c.Intake.MaxApplicationsPerDay <= 0 {
		return errors.New("MAX_APPLICATIONS_PER_DAY must be positive")
	}
	if c.Intake.DefaultPageSize <= 0 {
		c.Intake.DefaultPageSize = 20
	}
	switch c.Storage.Driver {
	case "local":
	case "s3":
		if c.Storage.S3Bucket == "" {
			return errors.New("S3_BUCKET is required when STORAGE_DRIVER=s3")
		}
	default:
		return errors.New("STORAGE_DRIVER must be local or s3")
	}
	return nil
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// splitList parses "a, b,,c" into [a b c].
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func lowerAll(in []string) []string {
	for i := range in {
		in[i] = strings.ToLower(in[i])
	}
	return in
}
