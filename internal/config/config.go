package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Front-ends allowed to call the API when CORS_ALLOWED_ORIGINS is unset.
var defaultAllowedOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
	"https://yagamifes-it.github.io",
}

// Runtime settings of the service, read from the environment.
type Config struct {
	Port                    string
	CBCPath                 string
	CBCThreads              int
	SolverWorkDir           string
	DefaultTimeLimitSeconds int
	CORSAllowedOrigins      []string
	Debug                   bool
}

// LoadEnv loads a .env file from the working directory into the process
// environment. Variables already set are kept. It reports whether a file was found.
func LoadEnv(filenames ...string) bool {
	return godotenv.Load(filenames...) == nil
}

// Load reads the service configuration, falling back to defaults for unset keys.
func Load() Config {
	return Config{
		Port:                    Get("PORT", "8080"),
		CBCPath:                 Get("CBC_PATH", "cbc"),
		CBCThreads:              GetInt("CBC_THREADS", 0),
		SolverWorkDir:           Get("SOLVER_WORK_DIR", ""),
		DefaultTimeLimitSeconds: GetInt("DEFAULT_TIME_LIMIT_SECONDS", 60),
		CORSAllowedOrigins:      GetList("CORS_ALLOWED_ORIGINS", defaultAllowedOrigins),
		Debug:                   GetBool("DEBUG", false),
	}
}

func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// GetInt parses key as an integer. Unparsable values are logged and ignored.
func GetInt(key string, fallback int) int {
	v := Get(key, "")
	if v == "" {
		return fallback
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn("ignoring invalid integer setting", "key", key, "value", v)
		return fallback
	}
	return n
}

func GetBool(key string, fallback bool) bool {
	v := Get(key, "")
	if v == "" {
		return fallback
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Warn("ignoring invalid boolean setting", "key", key, "value", v)
		return fallback
	}
	return b
}

// GetList splits a comma-separated value, dropping blank entries.
func GetList(key string, fallback []string) []string {
	v := Get(key, "")
	if v == "" {
		return fallback
	}

	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
