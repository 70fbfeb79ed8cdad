package config

import (
	"bufio"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Seed       string
	Arithmetic string
	LogLevel   string
	Workers    int
}

// Load reads MAKEBELIEVE_* variables from the environment, falling back to a
// .env file in the working directory and then to built-in defaults.
func Load() *Config {
	dotenv := readDotEnv(".env")

	return &Config{
		Seed:       getEnv(dotenv, "MAKEBELIEVE_SEED", ""),
		Arithmetic: getEnv(dotenv, "MAKEBELIEVE_ARITHMETIC", "exact"),
		LogLevel:   getEnv(dotenv, "MAKEBELIEVE_LOG_LEVEL", "info"),
		Workers:    getEnvInt(dotenv, "MAKEBELIEVE_WORKERS", 4),
	}
}

func getEnv(dotenv map[string]string, key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	if value := dotenv[key]; value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(dotenv map[string]string, key string, defaultValue int) int {
	raw := getEnv(dotenv, key, "")
	if raw == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}

func readDotEnv(path string) map[string]string {
	values := make(map[string]string)

	f, err := os.Open(path)
	if err != nil {
		return values
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		value = strings.Trim(value, `"'`)
		values[strings.TrimSpace(key)] = value
	}

	return values
}
