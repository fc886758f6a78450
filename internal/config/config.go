package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	APIURL      string
	WSURL       string
	HTTPTimeout time.Duration
	PageSize    int

	TokenStore      string
	TokenFile       string
	TokenPassphrase string
	SQLitePath      string
	DatabaseURL     string
	RedisURL        string
	RedisPassword   string
	RedisDB         int

	LogLevel    string
	Environment string
	MetricsAddr string

	// stub backend
	StubPort              string
	JWTSecret             string
	AccessTokenTTLMinutes int
	UploadDir             string
	AllowedOrigins        []string
}

// fileConfig is the optional YAML layer; env vars override it.
type fileConfig struct {
	API struct {
		URL            string `yaml:"url"`
		WSURL          string `yaml:"ws_url"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
		PageSize       int    `yaml:"page_size"`
	} `yaml:"api"`
	Token struct {
		Store      string `yaml:"store"`
		File       string `yaml:"file"`
		SQLitePath string `yaml:"sqlite_path"`
		Database   string `yaml:"database_url"`
		Redis      struct {
			URL      string `yaml:"url"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"token"`
	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
	Environment string `yaml:"environment"`
	MetricsAddr string `yaml:"metrics_addr"`
}

var AppConfig *Config

// LoadDotEnv loads .env from the working directory, falling back to
// ../.env. It returns the file it loaded, or "" when neither exists.
func LoadDotEnv() string {
	for _, path := range []string{".env", "../.env"} {
		if err := godotenv.Load(path); err == nil {
			return path
		}
	}
	return ""
}

// defaults holds values from the YAML file, consulted before built-in defaults
var defaults = map[string]string{}

func LoadConfig() *Config {
	if path := os.Getenv("PHOTOSHARE_CONFIG"); path != "" {
		if err := loadFile(path); err != nil {
			log.Printf("[CONFIG] Ignoring config file %s: %v", path, err)
		}
	}

	apiURL := strings.TrimRight(GetEnv("API_URL", "http://localhost:8080"), "/")
	wsURL := GetEnv("WS_URL", deriveWSURL(apiURL))

	home, _ := os.UserHomeDir()
	dataDir := GetEnv("PHOTOSHARE_HOME", home+"/.photoshare")

	AppConfig = &Config{
		APIURL:      apiURL,
		WSURL:       wsURL,
		HTTPTimeout: GetEnvAsDuration("HTTP_TIMEOUT_SECONDS", 15*time.Second),
		PageSize:    GetEnvAsInt("PAGE_SIZE", 12),

		TokenStore:      strings.ToLower(GetEnv("TOKEN_STORE", "file")),
		TokenFile:       GetEnv("TOKEN_FILE", dataDir+"/token"),
		TokenPassphrase: GetEnv("TOKEN_PASSPHRASE", ""),
		SQLitePath:      GetEnv("SQLITE_PATH", dataDir+"/photoshare.db"),
		DatabaseURL:     GetEnv("DATABASE_URL", ""),
		RedisURL:        GetEnv("REDIS_URL", "localhost:6379"),
		RedisPassword:   GetEnv("REDIS_PASSWORD", ""),
		RedisDB:         GetEnvAsInt("REDIS_DB", 0),

		LogLevel:    GetEnv("LOG_LEVEL", "info"),
		Environment: GetEnv("ENVIRONMENT", "development"),
		MetricsAddr: GetEnv("METRICS_ADDR", ""),

		StubPort:              GetEnv("STUB_PORT", "8080"),
		JWTSecret:             GetEnv("JWT_SECRET", "dev-secret-change-me"),
		AccessTokenTTLMinutes: GetEnvAsInt("ACCESS_TOKEN_TTL_MINUTES", 60*24),
		UploadDir:             GetEnv("UPLOAD_DIR", "./uploads"),
		AllowedOrigins:        splitList(GetEnv("ALLOWED_ORIGINS", "http://localhost:5173")),
	}

	return AppConfig
}

func loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse yaml: %w", err)
	}

	set := func(key, value string) {
		if value != "" {
			defaults[key] = value
		}
	}
	setInt := func(key string, value int) {
		if value != 0 {
			defaults[key] = strconv.Itoa(value)
		}
	}
	set("API_URL", fc.API.URL)
	set("WS_URL", fc.API.WSURL)
	setInt("HTTP_TIMEOUT_SECONDS", fc.API.TimeoutSeconds)
	setInt("PAGE_SIZE", fc.API.PageSize)
	set("TOKEN_STORE", fc.Token.Store)
	set("TOKEN_FILE", fc.Token.File)
	set("SQLITE_PATH", fc.Token.SQLitePath)
	set("DATABASE_URL", fc.Token.Database)
	set("REDIS_URL", fc.Token.Redis.URL)
	set("REDIS_PASSWORD", fc.Token.Redis.Password)
	setInt("REDIS_DB", fc.Token.Redis.DB)
	set("LOG_LEVEL", fc.Logging.Level)
	set("ENVIRONMENT", fc.Environment)
	set("METRICS_ADDR", fc.MetricsAddr)
	return nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func deriveWSURL(apiURL string) string {
	switch {
	case strings.HasPrefix(apiURL, "https://"):
		return "wss://" + strings.TrimPrefix(apiURL, "https://") + "/ws"
	case strings.HasPrefix(apiURL, "http://"):
		return "ws://" + strings.TrimPrefix(apiURL, "http://") + "/ws"
	}
	return apiURL + "/ws"
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		if fromFile, ok := defaults[key]; ok {
			return fromFile
		}
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("[CONFIG] Invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

// GetEnvAsDuration reads a whole number of seconds.
func GetEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	seconds := GetEnvAsInt(key, -1)
	if seconds < 0 {
		return defaultValue
	}
	return time.Duration(seconds) * time.Second
}
