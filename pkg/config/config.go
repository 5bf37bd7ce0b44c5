package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	Storage StorageConfig
	DB      DBConfig
	JWT     JWTConfig
	Auth    AuthConfig
	AI      AIConfig
	Redis   RedisConfig
	Company CompanyConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// StorageConfig selecciona dónde se guardan las cinco colecciones serializadas.
// Driver: "sqlite" (archivo local, por defecto) o "postgres".
type StorageConfig struct {
	Driver     string
	SQLitePath string
	Namespace  string // prefijo de las claves, ej. "invenpro_"
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// AuthConfig credenciales del operador único y PINs de las áreas restringidas.
type AuthConfig struct {
	Username      string
	PasswordHash  string // bcrypt
	DisplayName   string
	Role          string // Owner | Manager
	BillingPIN    string
	AnalyticsPIN  string
	AdjustmentPIN string
}

// AIConfig proveedor de IA para insights y chat.
type AIConfig struct {
	Provider        string // gemini | anthropic
	GeminiAPIKey    string
	GeminiModel     string
	GeminiBaseURL   string
	AnthropicAPIKey string
	AnthropicModel  string
	AnthropicURL    string
}

// CompanyConfig datos del emisor impresos en la cabecera de los PDF.
type CompanyConfig struct {
	Name    string
	Address string
	GSTIN   string
}

// RedisConfig caché opcional de insights. Addr vacío = sin caché.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, STORAGE_DRIVER, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "invenpro"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Storage: StorageConfig{
			Driver:     getString(v, "STORAGE_DRIVER", "sqlite"),
			SQLitePath: getString(v, "SQLITE_PATH", "./data/invenpro.db"),
			Namespace:  getString(v, "STORAGE_NAMESPACE", "invenpro_"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "invenpro"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 480),
			Issuer:     getString(v, "JWT_ISSUER", "invenpro"),
		},
		Auth: AuthConfig{
			Username:      getString(v, "OPERATOR_USERNAME", "admin"),
			PasswordHash:  getString(v, "OPERATOR_PASSWORD_HASH", ""),
			DisplayName:   getString(v, "OPERATOR_NAME", "Administrator"),
			Role:          getString(v, "OPERATOR_ROLE", "Owner"),
			BillingPIN:    getString(v, "BILLING_PIN", "0000"),
			AnalyticsPIN:  getString(v, "ANALYTICS_PIN", "2222"),
			AdjustmentPIN: getString(v, "ADJUSTMENT_PIN", "0000"),
		},
		AI: AIConfig{
			Provider:        getString(v, "AI_PROVIDER", "gemini"),
			GeminiAPIKey:    getString(v, "GEMINI_API_KEY", ""),
			GeminiModel:     getString(v, "GEMINI_MODEL", "gemini-1.5-flash"),
			GeminiBaseURL:   getString(v, "GEMINI_BASE_URL", ""),
			AnthropicAPIKey: getString(v, "ANTHROPIC_API_KEY", ""),
			AnthropicModel:  getString(v, "ANTHROPIC_MODEL", "claude-3-5-haiku-20241022"),
			AnthropicURL:    getString(v, "ANTHROPIC_BASE_URL", ""),
		},
		Redis: RedisConfig{
			Addr:     getString(v, "REDIS_ADDR", ""),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
			TTL:      time.Duration(getInt(v, "INSIGHTS_CACHE_TTL_SECONDS", 600)) * time.Second,
		},
		Company: CompanyConfig{
			Name:    getString(v, "COMPANY_NAME", "Modern Transformers Pvt Ltd"),
			Address: getString(v, "COMPANY_ADDRESS", "C-135, B S ROAD INDUSTRIAL AREA, GHAZIABAD"),
			GSTIN:   getString(v, "COMPANY_GSTIN", "09AAACM0805G4ZS"),
		},
	}

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET es obligatorio")
	}
	switch cfg.AI.Provider {
	case "gemini", "anthropic", "none":
	default:
		return nil, fmt.Errorf("config: AI_PROVIDER desconocido %q", cfg.AI.Provider)
	}
	switch cfg.Storage.Driver {
	case "sqlite", "postgres":
	default:
		return nil, fmt.Errorf("config: STORAGE_DRIVER desconocido %q", cfg.Storage.Driver)
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
