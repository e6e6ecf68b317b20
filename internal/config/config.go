package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr         string
	Port               string
	DataDir            string
	AccountsDBPath     string
	LoginConfigPath    string
	SessionSecret      string
	GinMode            string
	CORSAllowedOrigins []string
}

// Load 从环境变量（以及可选的 .env 文件）读取应用配置，并为缺失项提供默认值。
// 默认只监听回环地址。
func Load() AppConfig {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[CONFIG] load .env: %v", err)
	}

	port := env("PORT", "8080")
	listenAddr := env("LISTEN_ADDR", fmt.Sprintf("127.0.0.1:%s", port))

	dataDir := env("DATA_DIR", ".")
	accountsDB := env("ACCOUNTS_DB", filepath.Join(dataDir, "users.db"))
	loginConfig := env("LOGIN_CONFIG", filepath.Join(dataDir, "user_config.ini"))

	return AppConfig{
		ListenAddr:         listenAddr,
		Port:               port,
		DataDir:            dataDir,
		AccountsDBPath:     accountsDB,
		LoginConfigPath:    loginConfig,
		SessionSecret:      env("SESSION_SECRET", "schedulemanager-dev-secret"),
		GinMode:            env("GIN_MODE", "release"),
		CORSAllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
	}
}

func env(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
