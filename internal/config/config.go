package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	ServerPort string
	JWTSecret  string
	JWTExpiry  time.Duration

	AppEnv   string
	LogLevel string

	RunMigrations bool

	// PairingTTL is how long a display pairing stays pending before it expires.
	PairingTTL time.Duration
	// VersionRetention caps stored versions per board; 0 keeps all of them.
	VersionRetention int

	StorageDir     string
	StorageSecret  string
	UploadURLTTL   time.Duration
	DownloadURLTTL time.Duration
	MaxUploadBytes int64

	// APIBaseURL prefixes the signed storage URLs handed to clients.
	APIBaseURL string
	// PublicBaseURL is the web app origin encoded into pairing QR codes.
	PublicBaseURL string
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("⚠️  No .env file found, using system environment variables")
	}

	jwtSecret := getEnv("JWT_SECRET", "supersecretkey")

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "signage_user"),
		DBPassword: getEnv("DB_PASSWORD", "signage_pass"),
		DBName:     getEnv("DB_NAME", "signage_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		ServerPort: getEnv("SERVER_PORT", "8080"),
		JWTSecret:  jwtSecret,
		JWTExpiry:  time.Duration(getEnvInt("JWT_EXPIRY_HOURS", 24)) * time.Hour,

		AppEnv:   getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		RunMigrations: getEnvBool("RUN_MIGRATIONS", true),

		PairingTTL:       getEnvDuration("PAIRING_TTL", 10*time.Minute),
		VersionRetention: getEnvInt("BOARD_VERSION_RETENTION", 100),

		StorageDir:     getEnv("STORAGE_DIR", "./data/blobs"),
		StorageSecret:  getEnv("STORAGE_SECRET", jwtSecret),
		UploadURLTTL:   getEnvDuration("UPLOAD_URL_TTL", 15*time.Minute),
		DownloadURLTTL: getEnvDuration("DOWNLOAD_URL_TTL", time.Hour),
		MaxUploadBytes: int64(getEnvInt("MAX_UPLOAD_BYTES", 10<<20)),

		APIBaseURL:    getEnv("API_BASE_URL", "http://localhost:8080"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:5173"),
	}
}

// DSN returns the postgres connection string for gorm and the migrator.
func (c *Config) DSN() string {
	return "host=" + c.DBHost + " port=" + c.DBPort + " user=" + c.DBUser +
		" password=" + c.DBPassword + " dbname=" + c.DBName + " sslmode=" + c.DBSSLMode
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("⚠️  Invalid %s=%q, using %d", key, value, defaultVal)
		return defaultVal
	}
	return n
}

func getEnvBool(key string, defaultVal bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultVal
	}
	return b
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("⚠️  Invalid %s=%q, using %s", key, value, defaultVal)
		return defaultVal
	}
	return d
}
