package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr           string
	VerifyTimeout  time.Duration
	ScanWorkers    int
	ParseCacheSize int
	MaxBodyBytes   int64
}

// Load reads .env when present, then the process environment.
func Load() Config {
	_ = godotenv.Load()
	return Config{
		Addr:           normalizeAddr(firstNonEmpty(os.Getenv("SOLVECHECK_PORT"), os.Getenv("PORT"), ":8080")),
		VerifyTimeout:  getenvDuration("SOLVECHECK_VERIFY_TIMEOUT", 5*time.Second),
		ScanWorkers:    getenvInt("SOLVECHECK_SCAN_WORKERS", 4),
		ParseCacheSize: getenvInt("SOLVECHECK_PARSE_CACHE_SIZE", 512),
		MaxBodyBytes:   int64(getenvInt("SOLVECHECK_MAX_BODY_BYTES", 1<<20)),
	}
}

func normalizeAddr(port string) string {
	port = strings.TrimSpace(port)
	if strings.Contains(port, ":") {
		return port
	}
	return ":" + port
}

func getenvInt(k string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// getenvDuration accepts Go durations ("750ms") or whole seconds ("3").
func getenvDuration(k string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	return fallback
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
