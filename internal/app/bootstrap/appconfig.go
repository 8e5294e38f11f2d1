// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables (COURSEHUB_*), configuration
// files, or command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig
// covers ports, TLS, logging and request limits; everything specific to the
// course catalog lives here.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Upper bound on pooled connections

	// CORS
	CORSAllowedOrigins []string // Origins allowed to call the API ("*" for any)

	// Credentials
	BcryptCost int // bcrypt work factor for user secrets

	// Bulk endpoints
	BulkMaxItems  int // Maximum items per /coleccion request
	BulkRateLimit int // /coleccion requests per client IP per minute (0 disables)

	// Per-request store timeouts
	TimeoutShort  time.Duration // single-document reads and writes
	TimeoutMedium time.Duration // listings
	TimeoutBatch  time.Duration // bulk creation

	// Public URL used as the server in the API document
	PublicBaseURL string // e.g., "https://cursos.example.com" or "http://localhost:8080"
}
