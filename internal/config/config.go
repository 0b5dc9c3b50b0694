package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Documents DocumentsConfig
	Export    ExportConfig
	Log       LogConfig
	Printer   PrinterConfig
	Admin     AdminConfig

	// EnvFileErr is set when the .env file could not be read; the
	// environment alone is used in that case.
	EnvFileErr error
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

type DatabaseConfig struct {
	Driver     string
	URL        string
	Host       string
	Port       string
	Name       string
	User       string
	Password   string
	SSLMode    string
	Timezone   string
	SQLitePath string
}

type JWTConfig struct {
	Secret      string
	ExpiryHours time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

type DocumentsConfig struct {
	OutputDir string
	LogoDir   string
	ExportDir string
}

type ExportConfig struct {
	Threshold int64
}

type LogConfig struct {
	Level  string
	Format string
}

type PrinterConfig struct {
	Type    string
	USBPath string
	Address string
}

type AdminConfig struct {
	Username string
	Password string
	FullName string
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Load reads configuration from .env (when present) and the environment.
func Load() *Config {
	return LoadFile(".env")
}

// LoadFile is Load with an explicit env file path.
func LoadFile(path string) *Config {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.ReadInConfig(); err != nil {
		cfg.EnvFileErr = err
	}

	v.SetDefault("APP_NAME", "nota-perusahaan")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", "5000")
	v.SetDefault("APP_DEBUG", false)
	v.SetDefault("DB_DRIVER", "")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "nota")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_TIMEZONE", "Asia/Jakarta")
	v.SetDefault("DB_SQLITE_PATH", "receipts.db")
	v.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	v.SetDefault("JWT_EXPIRY_HOURS", 12)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("CORS_ALLOWED_METHODS", "GET,POST,OPTIONS")
	v.SetDefault("CORS_ALLOWED_HEADERS", "Origin,Content-Type,Authorization")
	v.SetDefault("RATE_LIMIT_RPS", 10)
	v.SetDefault("RATE_LIMIT_BURST", 20)
	v.SetDefault("DOCUMENTS_OUTPUT_DIR", "nota_pdf")
	v.SetDefault("DOCUMENTS_LOGO_DIR", ".")
	v.SetDefault("DOCUMENTS_EXPORT_DIR", "exports")
	v.SetDefault("EXPORT_THRESHOLD", 1000)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("PRINTER_TYPE", "none")
	v.SetDefault("ADMIN_FULL_NAME", "Administrator")

	cfg.App = AppConfig{
		Name:  v.GetString("APP_NAME"),
		Env:   v.GetString("APP_ENV"),
		Port:  firstNonEmpty(v.GetString("PORT"), v.GetString("APP_PORT")),
		Debug: v.GetBool("APP_DEBUG"),
	}
	cfg.Database = DatabaseConfig{
		Driver:     v.GetString("DB_DRIVER"),
		URL:        v.GetString("DATABASE_URL"),
		Host:       v.GetString("DB_HOST"),
		Port:       v.GetString("DB_PORT"),
		Name:       v.GetString("DB_NAME"),
		User:       v.GetString("DB_USER"),
		Password:   v.GetString("DB_PASSWORD"),
		SSLMode:    v.GetString("DB_SSL_MODE"),
		Timezone:   v.GetString("DB_TIMEZONE"),
		SQLitePath: v.GetString("DB_SQLITE_PATH"),
	}
	cfg.Database.Driver = cfg.Database.ResolveDriver()
	cfg.JWT = JWTConfig{
		Secret:      v.GetString("JWT_SECRET"),
		ExpiryHours: time.Duration(v.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		AllowedMethods: splitList(v.GetString("CORS_ALLOWED_METHODS")),
		AllowedHeaders: splitList(v.GetString("CORS_ALLOWED_HEADERS")),
	}
	cfg.RateLimit = RateLimitConfig{
		RequestsPerSecond: v.GetFloat64("RATE_LIMIT_RPS"),
		Burst:             v.GetInt("RATE_LIMIT_BURST"),
	}
	cfg.Documents = DocumentsConfig{
		OutputDir: v.GetString("DOCUMENTS_OUTPUT_DIR"),
		LogoDir:   v.GetString("DOCUMENTS_LOGO_DIR"),
		ExportDir: v.GetString("DOCUMENTS_EXPORT_DIR"),
	}
	cfg.Export = ExportConfig{Threshold: v.GetInt64("EXPORT_THRESHOLD")}
	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}
	cfg.Printer = PrinterConfig{
		Type:    v.GetString("PRINTER_TYPE"),
		USBPath: v.GetString("PRINTER_USB_PATH"),
		Address: v.GetString("PRINTER_ADDRESS"),
	}
	cfg.Admin = AdminConfig{
		Username: v.GetString("ADMIN_USERNAME"),
		Password: v.GetString("ADMIN_PASSWORD"),
		FullName: v.GetString("ADMIN_FULL_NAME"),
	}

	return cfg
}

// ResolveDriver picks postgres when a DATABASE_URL is set and no driver was
// named explicitly, and sqlite otherwise.
func (c *DatabaseConfig) ResolveDriver() string {
	switch strings.ToLower(strings.TrimSpace(c.Driver)) {
	case DriverPostgres, "postgresql":
		return DriverPostgres
	case DriverSQLite, "sqlite3":
		return DriverSQLite
	}
	if c.URL != "" {
		return DriverPostgres
	}
	return DriverSQLite
}

func (c *DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
