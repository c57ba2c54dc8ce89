package config

import (
	"log"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// Config holds all application settings loaded from the environment.
type Config struct {
	DBPath          string
	MigrationsPath  string
	JWTSecret       string
	LogLevel        string
	FrontendURL     string
	ListenAddr      string
	DefaultPageSize int
	Debug           bool
}

// AppConfig is the global configuration instance.
var AppConfig Config

// Init loads the .env file (if present) and populates AppConfig.
func Init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	AppConfig = Config{
		DBPath:          getEnv("DB_PATH", "blog.db"),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", "./migrations"),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		FrontendURL:     getEnv("FRONTEND_URL", "http://localhost:5173"),
		ListenAddr:      getEnv("LISTEN_ADDR", ":8080"),
		DefaultPageSize: getEnvAsInt("DEFAULT_PAGE_SIZE", 10),
		Debug:           getEnvAsBool("DEBUG", true),
	}

	validateConfig()

	if AppConfig.Debug {
		gin.SetMode(gin.DebugMode)
		log.Println("running in debug mode")
	} else {
		gin.SetMode(gin.ReleaseMode)
		log.Println("running in release mode")
	}

	log.Printf("configuration loaded, database: %s", AppConfig.DBPath)
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultVal int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	valStr := getEnv(key, "")
	if val, err := strconv.ParseBool(valStr); err == nil {
		return val
	}
	return defaultVal
}

func validateConfig() {
	if AppConfig.DBPath == "" {
		log.Fatal("error: DB_PATH must not be empty")
	}
	if AppConfig.JWTSecret == "" {
		log.Fatal("error: JWT_SECRET is not set")
	}
}
