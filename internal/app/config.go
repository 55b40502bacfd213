package app

import (
	"strings"
	"time"

	"github.com/casaviva/casaviva-backend/internal/pkg/logger"
	"github.com/casaviva/casaviva-backend/internal/utils"
)

type Config struct {
	JWTSecretKey       string
	AccessTokenTTL     time.Duration
	ReauthTokenTTL     time.Duration
	AcceptanceTokenTTL time.Duration
	AllowedOrigins     []string
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTLSeconds := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	reauthTokenTTLSeconds := utils.GetEnvAsInt("REAUTH_TOKEN_TTL", 300, log)
	acceptanceTokenTTLSeconds := utils.GetEnvAsInt("ACCEPTANCE_TOKEN_TTL", 300, log)
	allowedOrigins := utils.GetEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173", log)
	return Config{
		JWTSecretKey:       jwtSecretKey,
		AccessTokenTTL:     time.Duration(accessTokenTTLSeconds) * time.Second,
		ReauthTokenTTL:     time.Duration(reauthTokenTTLSeconds) * time.Second,
		AcceptanceTokenTTL: time.Duration(acceptanceTokenTTLSeconds) * time.Second,
		AllowedOrigins:     strings.Split(allowedOrigins, ","),
	}
}
