// main.go - Entry point for the attendance tracker server

package main // Declares the package name

import ( // Import required packages
	"log" // Logging
	"os"  // Standard error and exit codes

	"attendance-tracker/config"   // Project config management
	"attendance-tracker/database" // Database connection and setup
	"attendance-tracker/events"   // Attendance event publishing over MQTT
	"attendance-tracker/handlers" // HTTP handlers for API endpoints
	"attendance-tracker/logger"   // Logging with optional rollbar reporting
	"attendance-tracker/routes"   // Router and middleware wiring
	"attendance-tracker/store"    // Storage handle used by the handlers

	"github.com/gin-gonic/gin" // Gin web framework
)

func main() { // Main function, program entry point
	// STEP 1: Load configuration and establish connections
	cfg := config.Load()     // Load configuration (.env, environment, defaults)
	gin.SetMode(cfg.GinMode) // Release mode unless configured otherwise

	appLog := logger.New(log.New(os.Stderr, "", log.LstdFlags), cfg.RollbarToken, cfg.Env) // Std log, mirrored to rollbar when a token is set
	defer appLog.Close()                                                                   // Flush pending rollbar items

	db, err := database.Open(cfg) // Connect, migrate and seed the admin
	if err != nil {
		log.Fatal("DB connection error: ", err) // If error, log and exit
	}

	var publisher events.Publisher = events.NopPublisher{} // Events are optional
	if cfg.MQTTBroker != "" {
		p, err := events.Connect(cfg.MQTTBroker, cfg.MQTTClientID, cfg.MQTTTopicPrefix) // Connect to the MQTT broker
		if err != nil {
			log.Fatal("MQTT connection error: ", err) // If error, log and exit
		}
		publisher = p
	}
	defer publisher.Close() // Disconnect from the broker on exit

	// STEP 2: Build handlers and routes
	h := handlers.New(handlers.Deps{
		Store:     store.New(db), // Injected storage handle
		Publisher: publisher,     // Check-in and check-out events
		Logger:    appLog,        // Failures and warnings
		JWTSecret: cfg.JWTSecret, // Login token signing key
		JWTExpiry: cfg.JWTExpiry, // Login token lifetime
	})
	r := routes.NewRouter(h, appLog, cfg.JWTSecret) // All endpoints under /api

	// STEP 3: Start the web server
	addr := "0.0.0.0:" + cfg.Port // Listen on every interface
	appLog.Printf("Attendance Tracker listening on %s", addr)
	if err := r.Run(addr); err != nil { // Blocks until the server stops
		appLog.Error("server stopped", err)
		appLog.Close() // os.Exit skips deferred calls
		os.Exit(1)
	}
}
