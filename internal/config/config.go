package config

import (
	"log"
	"strings"

	"github.com/fazli/printshop-api/internal/domain/accounting"
	"github.com/spf13/viper"
)

type Config struct {
	App         AppConfig
	Log         LogConfig
	Database    DatabaseConfig
	CORS        CORSConfig
	RateLimit   RateLimitConfig
	Owners      OwnerConfig
	Reconcile   ReconcileConfig
	Idempotency IdempotencyConfig
	Printer     PrinterConfig
	Shop        ShopConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

type LogConfig struct {
	Level  string
	Format string
}

type DatabaseConfig struct {
	Driver     string // postgres or sqlite
	Host       string
	Port       string
	Name       string
	User       string
	Password   string
	SSLMode    string
	Timezone   string
	SQLitePath string
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

// OwnerConfig is the category to owner routing for new orders.
type OwnerConfig struct {
	Default     string
	Assignments []accounting.OwnerAssignment
}

type ReconcileConfig struct {
	// Schedule is a cron spec with seconds; empty disables scheduled runs.
	Schedule string
}

type IdempotencyConfig struct {
	// CleanupSchedule purges expired keys; empty disables it. Expired keys
	// are ignored on lookup either way.
	CleanupSchedule string
}

type PrinterConfig struct {
	Type    string // usb, network or none
	USBPath string
	Address string
	Width   int
}

type ShopConfig struct {
	Name    string
	Address string
	Phone   string
}

const defaultOwnerRules = "Nazir=Banner Printing,Glass Printing,Flag Printing,Sticker Printing"

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "printshop-api")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "")
	viper.SetDefault("DB_DRIVER", "postgres")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "printshop")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "Asia/Karachi")
	viper.SetDefault("DB_SQLITE_PATH", "printshop.db")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)
	viper.SetDefault("OWNER_DEFAULT", "Shabir")
	viper.SetDefault("OWNER_RULES", defaultOwnerRules)
	viper.SetDefault("RECONCILE_SCHEDULE", "")
	viper.SetDefault("IDEMPOTENCY_CLEANUP_SCHEDULE", "")
	viper.SetDefault("PRINTER_TYPE", "none")
	viper.SetDefault("PRINTER_USB_PATH", "/dev/usb/lp0")
	viper.SetDefault("PRINTER_ADDRESS", "")
	viper.SetDefault("PRINTER_WIDTH", 32)
	viper.SetDefault("SHOP_NAME", "Print & Advertising")
	viper.SetDefault("SHOP_ADDRESS", "")
	viper.SetDefault("SHOP_PHONE", "")

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		Log: LogConfig{
			Level:  viper.GetString("LOG_LEVEL"),
			Format: viper.GetString("LOG_FORMAT"),
		},
		Database: DatabaseConfig{
			Driver:     viper.GetString("DB_DRIVER"),
			Host:       viper.GetString("DB_HOST"),
			Port:       viper.GetString("DB_PORT"),
			Name:       viper.GetString("DB_NAME"),
			User:       viper.GetString("DB_USER"),
			Password:   viper.GetString("DB_PASSWORD"),
			SSLMode:    viper.GetString("DB_SSL_MODE"),
			Timezone:   viper.GetString("DB_TIMEZONE"),
			SQLitePath: viper.GetString("DB_SQLITE_PATH"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
		Owners: OwnerConfig{
			Default:     viper.GetString("OWNER_DEFAULT"),
			Assignments: ParseOwnerRules(viper.GetString("OWNER_RULES")),
		},
		Reconcile: ReconcileConfig{
			Schedule: viper.GetString("RECONCILE_SCHEDULE"),
		},
		Idempotency: IdempotencyConfig{
			CleanupSchedule: viper.GetString("IDEMPOTENCY_CLEANUP_SCHEDULE"),
		},
		Printer: PrinterConfig{
			Type:    viper.GetString("PRINTER_TYPE"),
			USBPath: viper.GetString("PRINTER_USB_PATH"),
			Address: viper.GetString("PRINTER_ADDRESS"),
			Width:   viper.GetInt("PRINTER_WIDTH"),
		},
		Shop: ShopConfig{
			Name:    viper.GetString("SHOP_NAME"),
			Address: viper.GetString("SHOP_ADDRESS"),
			Phone:   viper.GetString("SHOP_PHONE"),
		},
	}
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}

// OwnerRule builds the owner routing rule from configuration.
func (c OwnerConfig) OwnerRule() *accounting.OwnerRule {
	return accounting.NewOwnerRule(c.Default, c.Assignments...)
}

// ParseOwnerRules reads "Owner=Cat A,Cat B;Other=Cat C". Malformed parts are skipped.
func ParseOwnerRules(s string) []accounting.OwnerAssignment {
	var out []accounting.OwnerAssignment
	for _, part := range strings.Split(s, ";") {
		owner, cats, ok := strings.Cut(part, "=")
		owner = strings.TrimSpace(owner)
		if !ok || owner == "" {
			continue
		}
		a := accounting.OwnerAssignment{Owner: owner}
		for _, c := range strings.Split(cats, ",") {
			if c = strings.TrimSpace(c); c != "" {
				a.Categories = append(a.Categories, c)
			}
		}
		if len(a.Categories) > 0 {
			out = append(out, a)
		}
	}
	return out
}
