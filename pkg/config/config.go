package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	GitHub   GitHubConfig
	Evidence EvidenceConfig
	Fonts    FontConfig
	Log      LogConfig

	// EnvFileLoaded reports whether a .env file was read.
	EnvFileLoaded bool
}

type ServerConfig struct {
	Port  string
	Mode  string
	Token string
}

type DatabaseConfig struct {
	Path string
}

type GitHubConfig struct {
	Token      string
	APIURL     string
	AuthScheme string
	UserAgent  string
	TargetOrg  string
}

// EvidenceConfig holds the values used by the fixed record strategy and the
// default output location of the CLI.
type EvidenceConfig struct {
	Month      string
	Year       int
	Repository string
	Author     string
	Strategy   string
	OutputPath string
}

type FontConfig struct {
	ManifestPath string
}

type LogConfig struct {
	Level string
}

// Version is overridden at build time with -ldflags "-X".
var Version = "dev"

const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:103.0) Gecko/20100101 Firefox/103.0"

var AppConfig *Config

// Load loads configuration from .env file and environment variables
func Load() error {
	// Load .env file if it exists; callers log the outcome once their logger is set up
	envFileLoaded := godotenv.Load() == nil

	AppConfig = &Config{
		EnvFileLoaded: envFileLoaded,
		Server: ServerConfig{
			Port:  getEnv("PORT", "8080"),
			Mode:  getEnv("GIN_MODE", "release"),
			Token: getEnv("SERVER_TOKEN", ""),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", ""),
		},
		GitHub: GitHubConfig{
			Token:      getEnv("GITHUB_PAS", ""),
			APIURL:     getEnv("GITHUB_API_URL", "https://api.github.com"),
			AuthScheme: getEnv("GITHUB_AUTH_SCHEME", "basic"),
			UserAgent:  getEnv("USER_AGENT", DefaultUserAgent),
			TargetOrg:  getEnv("TARGET_ORG", "Dekalabs"),
		},
		Evidence: EvidenceConfig{
			Month:      getEnv("EVIDENCE_MONTH", "Junio"),
			Year:       getEnvAsInt("EVIDENCE_YEAR", 22),
			Repository: getEnv("EVIDENCE_REPOSITORY", "Climate Trade Marketplace"),
			Author:     getEnv("EVIDENCE_AUTHOR", "Pablo Blanco Celdrán"),
			Strategy:   getEnv("RECORD_STRATEGY", "fixed"),
			OutputPath: getEnv("OUTPUT_PATH", "test.pdf"),
		},
		Fonts: FontConfig{
			ManifestPath: getEnv("FONT_MANIFEST", "fonts/manifest.json"),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	return nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
