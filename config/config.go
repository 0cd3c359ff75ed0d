// config.go - Handles configuration for the project

package config // Declares the package name

import ( // Import required packages
	"log"  // Reports a .env file that exists but cannot be read
	"os"   // For checking whether the .env file exists
	"time" // Token lifetime

	"github.com/joho/godotenv" // Loads .env into the environment
	"github.com/spf13/viper"   // Defaults plus environment lookup
)

type Config struct { // Config struct holds all configuration values
	Port    string // HTTP listen port
	Env     string // Deployment name reported to rollbar (dev, prod, ...)
	GinMode string // gin.DebugMode, gin.ReleaseMode or gin.TestMode

	DBDriver string // "sqlite" (default) or "postgres"
	DBPath   string // Path to the SQLite database file
	DBDSN    string // Postgres DSN, only read when DBDriver is "postgres"

	JWTSecret string        // Secret key for login tokens
	JWTExpiry time.Duration // Lifetime of a login token

	MQTTBroker      string // Address of the MQTT broker; empty disables attendance events
	MQTTClientID    string // Client id announced to the broker
	MQTTTopicPrefix string // Prefix for attendance event topics

	RollbarToken string // Empty disables error reporting

	CreateAdmin   bool   // Seed a default admin user on startup
	AdminUsername string // Username of the seeded admin
	AdminEmail    string // Email of the seeded admin
	AdminPassword string // Password of the seeded admin; required when CreateAdmin is set
}

func Load() *Config { // Load reads config from an optional .env file and the environment, falling back to defaults
	loadDotEnv(".env") // Variables already set in the environment win

	v := viper.New()                                          // Private instance, no global state
	v.SetDefault("PORT", "5000")                              // Default listen port
	v.SetDefault("APP_ENV", "dev")                            // Default deployment name
	v.SetDefault("GIN_MODE", "release")                       // Quiet gin unless asked otherwise
	v.SetDefault("DB_DRIVER", "sqlite")                       // Single-file store by default
	v.SetDefault("DB_PATH", "attendance.db")                  // SQLite file next to the binary
	v.SetDefault("DB_DSN", "")                                // Only needed for postgres
	v.SetDefault("JWT_SECRET", "your-secret-key-change-this") // Override in production
	v.SetDefault("JWT_EXPIRY", 72*time.Hour)                  // Tokens last three days
	v.SetDefault("MQTT_BROKER", "")                           // Events disabled unless set
	v.SetDefault("MQTT_CLIENT_ID", "attendance-tracker")      // Client id at the broker
	v.SetDefault("MQTT_TOPIC_PREFIX", "attendance")           // Topics are attendance/checkin, attendance/checkout
	v.SetDefault("ROLLBAR_TOKEN", "")                         // Rollbar disabled unless set
	v.SetDefault("ADMIN_CREATE", false)                       // No seeding unless asked
	v.SetDefault("ADMIN_USERNAME", "admin")                   // Seeded admin username
	v.SetDefault("ADMIN_EMAIL", "admin@localhost")            // Seeded admin email
	v.SetDefault("ADMIN_PASSWORD", "")                        // Must be supplied to seed
	v.AutomaticEnv()                                          // Environment overrides every default

	return &Config{
		Port:    v.GetString("PORT"),     // Listen port
		Env:     v.GetString("APP_ENV"),  // Deployment name
		GinMode: v.GetString("GIN_MODE"), // Gin mode

		DBDriver: v.GetString("DB_DRIVER"), // Database driver
		DBPath:   v.GetString("DB_PATH"),   // SQLite file
		DBDSN:    v.GetString("DB_DSN"),    // Postgres DSN

		JWTSecret: v.GetString("JWT_SECRET"),   // Token signing key
		JWTExpiry: v.GetDuration("JWT_EXPIRY"), // Token lifetime

		MQTTBroker:      v.GetString("MQTT_BROKER"),       // Broker address
		MQTTClientID:    v.GetString("MQTT_CLIENT_ID"),    // Broker client id
		MQTTTopicPrefix: v.GetString("MQTT_TOPIC_PREFIX"), // Event topic prefix

		RollbarToken: v.GetString("ROLLBAR_TOKEN"), // Rollbar access token

		CreateAdmin:   v.GetBool("ADMIN_CREATE"),     // Seed switch
		AdminUsername: v.GetString("ADMIN_USERNAME"), // Seeded username
		AdminEmail:    v.GetString("ADMIN_EMAIL"),    // Seeded email
		AdminPassword: v.GetString("ADMIN_PASSWORD"), // Seeded password
	}
}

func loadDotEnv(path string) { // Helper to load path if it exists
	if _, err := os.Stat(path); err != nil { // Missing file is the normal case
		if !os.IsNotExist(err) {
			log.Printf("config: stat %s: %v", path, err) // Anything else is worth a line
		}
		return
	}
	if err := godotenv.Load(path); err != nil { // Never overrides variables already set
		log.Printf("config: load %s: %v", path, err)
	}
}
