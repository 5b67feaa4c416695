package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	DBDriver            string
	DBHost              string
	DBPort              string
	DBUser              string
	DBPassword          string
	DBName              string
	JWTSecretKey        string
	AccessTokenMinutes  int
	RefreshTokenMinutes int
	AllowedOrigins      []string
	GinMode             string
	Port                string
}

func Load() *Config {
	return &Config{
		DBDriver:            getEnv("DB_DRIVER", "postgres"),
		DBHost:              getEnv("DB_HOST", "localhost"),
		DBPort:              getEnv("DB_PORT", "5432"),
		DBUser:              getEnv("DB_USER", "taskuser"),
		DBPassword:          getEnv("DB_PASSWORD", "taskpassword"),
		DBName:              getEnv("DB_NAME", "task_management"),
		JWTSecretKey:        getEnv("JWT_SECRET_KEY", "default-secret-key-change-me"),
		AccessTokenMinutes:  getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30),
		RefreshTokenMinutes: getEnvInt("REFRESH_TOKEN_EXPIRE_MINUTES", 7*24*60),
		AllowedOrigins:      getEnvList("ALLOWED_ORIGINS", "http://localhost:3000"),
		GinMode:             getEnv("GIN_MODE", "debug"),
		Port:                getEnv("PORT", "8080"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvList(key, defaultValue string) []string {
	raw := getEnv(key, defaultValue)
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
