package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App       AppConfig
	DB        DBConfig
	JWT       JWTConfig
	HTTP      HTTPConfig
	Biometric BiometricConfig
	Sweep     SweepConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
	GymName  string // nombre impreso en los recibos
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo (ej. DATABASE_URL de Supabase).
type DBConfig struct {
	DatabaseURL    string
	Host           string
	Port           int
	User           string
	Password       string
	DBName         string
	SSLMode        string
	ConnectRetries int
	AutoMigrate    bool
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

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// BiometricConfig parámetros del gateway de lectores de huella.
// Las credenciales viajan en cada comando; nunca se dejan como literales en el código.
type BiometricConfig struct {
	GatewayURL  string
	APIKey      string
	UserName    string
	Password    string
	DeviceDelay time.Duration // pausa entre dispositivos durante un fan-out
	HTTPTimeout time.Duration // 0 = sin timeout propio (default del cliente)
	CacheTTL    time.Duration // vigencia de la lista de dispositivos activos en memoria
}

// SweepConfig barrido periódico de suscripciones vencidas.
type SweepConfig struct {
	Interval    time.Duration // 0 = deshabilitado
	Concurrency int
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, JWT_SECRET, BIOMETRIC_GATEWAY_URL, etc.
func Load() (*Config, error) {
	// .env al entorno del proceso; si no existe no pasa nada.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "gymflow-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
			GymName:  getString(v, "GYM_NAME", "GymFlow"),
		},
		DB: DBConfig{
			DatabaseURL:    getString(v, "DATABASE_URL", ""),
			Host:           getString(v, "DB_HOST", "localhost"),
			Port:           getInt(v, "DB_PORT", 5432),
			User:           getString(v, "DB_USER", "postgres"),
			Password:       getString(v, "DB_PASSWORD", ""),
			DBName:         getString(v, "DB_NAME", "gymflow"),
			SSLMode:        getString(v, "DB_SSLMODE", "disable"),
			ConnectRetries: getInt(v, "DB_CONNECT_RETRIES", 5),
			AutoMigrate:    getBool(v, "DB_AUTO_MIGRATE", true),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "gymflow-api"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Biometric: BiometricConfig{
			GatewayURL:  getString(v, "BIOMETRIC_GATEWAY_URL", ""),
			APIKey:      getString(v, "BIOMETRIC_API_KEY", ""),
			UserName:    getString(v, "BIOMETRIC_USERNAME", ""),
			Password:    getString(v, "BIOMETRIC_PASSWORD", ""),
			DeviceDelay: getDuration(v, "BIOMETRIC_DEVICE_DELAY", 500*time.Millisecond),
			HTTPTimeout: getDuration(v, "BIOMETRIC_HTTP_TIMEOUT", 0),
			CacheTTL:    getDuration(v, "BIOMETRIC_DEVICE_CACHE_TTL", 30*time.Second),
		},
		Sweep: SweepConfig{
			Interval:    getDuration(v, "SWEEP_INTERVAL", 0),
			Concurrency: getInt(v, "SWEEP_CONCURRENCY", 1),
		},
	}

	if cfg.Sweep.Concurrency <= 0 {
		cfg.Sweep.Concurrency = 1
	}
	if cfg.Biometric.DeviceDelay < 0 {
		return nil, fmt.Errorf("config: BIOMETRIC_DEVICE_DELAY no puede ser negativo")
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

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}

// getDuration acepta "500ms", "2s", "1h" o un entero en milisegundos.
func getDuration(v *viper.Viper, key string, def time.Duration) time.Duration {
	if !v.IsSet(key) {
		return def
	}
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return def
	}
	if ms, err := strconv.Atoi(raw); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return def
	}
	return d
}
