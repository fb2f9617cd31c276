package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// AppConfig holds environment driven configuration shared by both services.
// Sensitive values must come from the environment or the JSON config file,
// never from defaults baked into code.
type AppConfig struct {
	// API service
	APIPort string
	// Web service
	WebPort string

	// MySQL
	DatabaseURI string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string

	// Redis (session store shared by both processes)
	RedisHost     string
	RedisPort     int
	RedisDB       int
	RedisPassword string

	// reCAPTCHA
	RecaptchaSecret    string
	RecaptchaVerifyURL string

	// File locations
	UploadsDir string
	PagesDir   string
	StaticDirs []string

	// Where /add_admin and /add_menu redirect after creation; this is the
	// web service's public base URL.
	RedirectBase string

	AllowedOrigins []string

	// Gin framework configuration
	GinMode string
	GinPath string

	// Logging
	LogLevel      string
	LogPath       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
	LogCompress   bool
}

// Load reads configuration with the precedence JSON file -> defaults ->
// environment variable overrides.
func Load() AppConfig {
	var cfg AppConfig
	_ = loadJSONConfig(filepath.Join("config", "config.json"), &cfg)
	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)
	return cfg
}

// loadJSONConfig reads the JSON file into cfg if present. Returns an error
// only for invalid JSON; a missing file is ignored.
func loadJSONConfig(path string, out *AppConfig) error {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var raw map[string]any
	if err := json.NewDecoder(f).Decode(&raw); err != nil {
		return err
	}

	getString := func(m map[string]any, key string) string {
		if v, ok := m[key]; ok {
			if s, ok := v.(string); ok {
				return s
			}
		}
		return ""
	}
	getInt := func(m map[string]any, key string) int {
		if v, ok := m[key]; ok {
			switch t := v.(type) {
			case float64:
				return int(t)
			case int:
				return t
			}
		}
		return 0
	}
	getBool := func(m map[string]any, key string) bool {
		if v, ok := m[key]; ok {
			if b, ok := v.(bool); ok {
				return b
			}
		}
		return false
	}
	getStringSlice := func(m map[string]any, key string) []string {
		if v, ok := m[key]; ok {
			if arr, ok := v.([]any); ok {
				res := make([]string, 0, len(arr))
				for _, it := range arr {
					if s, ok := it.(string); ok {
						res = append(res, s)
					}
				}
				return res
			}
		}
		return nil
	}

	if app, ok := raw["app"].(map[string]any); ok {
		out.APIPort = getString(app, "APIPort")
		out.WebPort = getString(app, "WebPort")
		out.RedirectBase = getString(app, "RedirectBase")
		if list := getStringSlice(app, "AllowedOrigins"); len(list) > 0 {
			out.AllowedOrigins = list
		}
	}

	if dbs, ok := raw["database"].(map[string]any); ok {
		out.DatabaseURI = getString(dbs, "DatabaseURI")
		out.DBHost = getString(dbs, "DBHost")
		out.DBPort = getString(dbs, "DBPort")
		out.DBUser = getString(dbs, "DBUser")
		out.DBPassword = getString(dbs, "DBPassword")
		out.DBName = getString(dbs, "DBName")
	}

	if rds, ok := raw["redis"].(map[string]any); ok {
		out.RedisHost = getString(rds, "RedisHost")
		if v := getInt(rds, "RedisPort"); v != 0 {
			out.RedisPort = v
		}
		if v := getInt(rds, "RedisDB"); v != 0 {
			out.RedisDB = v
		}
		out.RedisPassword = getString(rds, "RedisPassword")
	}

	if rc, ok := raw["recaptcha"].(map[string]any); ok {
		out.RecaptchaSecret = getString(rc, "Secret")
		out.RecaptchaVerifyURL = getString(rc, "VerifyURL")
	}

	if fl, ok := raw["files"].(map[string]any); ok {
		out.UploadsDir = getString(fl, "UploadsDir")
		out.PagesDir = getString(fl, "PagesDir")
		if list := getStringSlice(fl, "StaticDirs"); len(list) > 0 {
			out.StaticDirs = list
		}
	}

	if g, ok := raw["gin"].(map[string]any); ok {
		if v := getString(g, "Mode"); v != "" {
			out.GinMode = v
		}
		if v := getString(g, "LogPath"); v != "" {
			out.GinPath = v
		}
	}

	if lg, ok := raw["log"].(map[string]any); ok {
		if v := getString(lg, "Level"); v != "" {
			out.LogLevel = v
		}
		if v := getString(lg, "Path"); v != "" {
			out.LogPath = v
		}
		if v := getInt(lg, "MaxSizeMB"); v != 0 {
			out.LogMaxSizeMB = v
		}
		if v := getInt(lg, "MaxBackups"); v != 0 {
			out.LogMaxBackups = v
		}
		if v := getInt(lg, "MaxAgeDays"); v != 0 {
			out.LogMaxAgeDays = v
		}
		out.LogCompress = getBool(lg, "Compress")
	}

	return nil
}

// applyDefaults sets sane defaults for zero-value fields.
func applyDefaults(c *AppConfig) {
	if c.APIPort == "" {
		c.APIPort = "3000"
	}
	if c.WebPort == "" {
		c.WebPort = "3030"
	}
	if c.DBHost == "" {
		c.DBHost = "127.0.0.1"
	}
	if c.DBPort == "" {
		c.DBPort = "3306"
	}
	if c.DBUser == "" {
		c.DBUser = "root"
	}
	if c.DBName == "" {
		c.DBName = "chicknext"
	}
	if c.RedisHost == "" {
		c.RedisHost = "127.0.0.1"
	}
	if c.RedisPort == 0 {
		c.RedisPort = 6379
	}
	if c.RecaptchaVerifyURL == "" {
		c.RecaptchaVerifyURL = "https://www.google.com/recaptcha/api/siteverify"
	}
	if c.UploadsDir == "" {
		c.UploadsDir = "uploads"
	}
	if c.PagesDir == "" {
		c.PagesDir = "pages/html"
	}
	if len(c.StaticDirs) == 0 {
		c.StaticDirs = []string{"pages/style", "pages/style/picture"}
	}
	if c.RedirectBase == "" {
		c.RedirectBase = "http://localhost:3030"
	}
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{"http://localhost:3030"}
	}
	if c.GinMode == "" {
		c.GinMode = "release"
	}
	if c.GinPath == "" {
		c.GinPath = "logs/go_gin.log"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogMaxSizeMB == 0 {
		c.LogMaxSizeMB = 100
	}
	if c.LogMaxBackups == 0 {
		c.LogMaxBackups = 3
	}
	if c.LogMaxAgeDays == 0 {
		c.LogMaxAgeDays = 7
	}
}

// applyEnvOverrides maps known environment variables onto config values when
// present. The MYSQL_* names match the legacy deployment.
func applyEnvOverrides(c *AppConfig) {
	if v := getEnv("PORT", ""); v != "" {
		c.APIPort = v
	}
	if v := getEnv("API_PORT", ""); v != "" {
		c.APIPort = v
	}
	if v := getEnv("WEB_PORT", ""); v != "" {
		c.WebPort = v
	}
	if v := getEnv("DATABASE_URI", ""); v != "" {
		c.DatabaseURI = v
	}
	if v := getEnv("MYSQL_HOST", ""); v != "" {
		c.DBHost = v
	}
	if v := getEnv("MYSQL_PORT", ""); v != "" {
		c.DBPort = v
	}
	if v := getEnv("MYSQL_USERNAME", ""); v != "" {
		c.DBUser = v
	}
	if v := getEnv("MYSQL_PASSWORD", ""); v != "" {
		c.DBPassword = v
	}
	if v := getEnv("MYSQL_DATABASE", ""); v != "" {
		c.DBName = v
	}
	if v := getEnv("REDIS_HOST", ""); v != "" {
		c.RedisHost = v
	}
	if v := getEnv("REDIS_PORT", ""); v != "" {
		c.RedisPort = mustParseInt(v)
	}
	if v := getEnv("REDIS_DB", ""); v != "" {
		c.RedisDB = mustParseInt(v)
	}
	if v := getEnv("REDIS_PASSWORD", ""); v != "" {
		c.RedisPassword = v
	}
	if v := getEnv("RECAPTCHA_SECRET", ""); v != "" {
		c.RecaptchaSecret = v
	}
	if v := getEnv("RECAPTCHA_VERIFY_URL", ""); v != "" {
		c.RecaptchaVerifyURL = v
	}
	if v := getEnv("UPLOADS_DIR", ""); v != "" {
		c.UploadsDir = v
	}
	if v := getEnv("PAGES_DIR", ""); v != "" {
		c.PagesDir = v
	}
	if v := getEnv("STATIC_DIRS", ""); v != "" {
		c.StaticDirs = splitAndTrim(v)
	}
	if v := getEnv("REDIRECT_BASE", ""); v != "" {
		c.RedirectBase = v
	}
	if v := getEnv("CORS_ALLOWED_ORIGINS", ""); v != "" {
		c.AllowedOrigins = splitAndTrim(v)
	}
	if v := getEnv("GIN_MODE", ""); v != "" {
		c.GinMode = v
	}
	if v := getEnv("GIN_PATH", ""); v != "" {
		c.GinPath = v
	}
	if v := getEnv("LOG_LEVEL", ""); v != "" {
		c.LogLevel = v
	}
	if v := getEnv("LOG_PATH", ""); v != "" {
		c.LogPath = v
	}
	if v := getEnv("LOG_MAX_SIZE_MB", ""); v != "" {
		c.LogMaxSizeMB = mustParseInt(v)
	}
	if v := getEnv("LOG_MAX_BACKUPS", ""); v != "" {
		c.LogMaxBackups = mustParseInt(v)
	}
	if v := getEnv("LOG_MAX_AGE_DAYS", ""); v != "" {
		c.LogMaxAgeDays = mustParseInt(v)
	}
	if v := getEnv("LOG_COMPRESS", ""); v != "" {
		c.LogCompress = v == "true"
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func mustParseInt(val string) int {
	i, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return i
}

func splitAndTrim(raw string) []string {
	items := []string{}
	for _, item := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
