package config

import (
	"os"
	"path/filepath"
	"time"

	"steward/internal/logger"

	"github.com/joho/godotenv"
)

func init() {
	envFiles := []string{
		".env",
	}

	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err != nil {
			if !os.IsNotExist(err) {
				logger.Warn("Error loading %s: %v", envFile, err)
			}
		}
	}
}

func GetEnv(key string, defaultValue string) string {
	value := os.Getenv(key)

	if value == "" {
		return defaultValue
	}

	return value
}

func getHomeDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		logger.Warn("Could not determine home directory: %v", err)
		return ""
	}
	return homeDir
}

func getDefaultSettingsPath(fallback string) string {
	homeDir := getHomeDir()
	if homeDir == "" {
		return fallback
	}
	return filepath.Join(homeDir, ".steward", "settings.yaml")
}

func getDefaultDatabasePath(fallback string, profile string) string {
	homeDir := getHomeDir()
	if homeDir == "" {
		return fallback
	}
	return filepath.Join(homeDir, ".steward", profile, "steward.db")
}

func getDefaultPrivateKeyPath(fallback string) string {
	homeDir := getHomeDir()
	if homeDir == "" {
		return fallback
	}
	return filepath.Join(homeDir, ".ssh", "id_rsa")
}

type Configuration struct {
	StewardProfile string

	SettingsPath   string
	DatabasePath   string
	PrivateKeyPath string

	KeyBits int

	DialTimeout      time.Duration
	AuthTimeout      time.Duration
	ProvisionTimeout time.Duration
	SessionTimeout   time.Duration

	AuthorizeKeyScriptTemplatePath string
	InstallRoleScriptTemplatePath  string
}

var StewardProfile = GetEnv("STEWARD_PROFILE", "default")
var DatabasePath = GetEnv("STEWARD_DATABASE_PATH", getDefaultDatabasePath("/var/lib/steward/steward.db", StewardProfile))

var Config = &Configuration{
	StewardProfile: StewardProfile,

	SettingsPath:   GetEnv("STEWARD_SETTINGS_PATH", getDefaultSettingsPath("/etc/steward/settings.yaml")),
	DatabasePath:   DatabasePath,
	PrivateKeyPath: GetEnv("STEWARD_KEY_PATH", getDefaultPrivateKeyPath("/root/.ssh/id_rsa")),

	KeyBits: 2048,

	DialTimeout:      3 * time.Second,
	AuthTimeout:      10 * time.Second,
	ProvisionTimeout: 20 * time.Second,
	SessionTimeout:   20 * time.Second,

	AuthorizeKeyScriptTemplatePath: "scripts/authorize-key.hbs",
	InstallRoleScriptTemplatePath:  "scripts/install-role.hbs",
}
