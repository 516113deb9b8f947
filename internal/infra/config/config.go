// internal/infra/config/config.go
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the environment settings for the whole application.
type Config struct {
	Port     string
	GCPCreds string

	FirestoreProjectID       string
	FirestoreCredentialsFile string
	FirebaseProjectID        string

	// Cart persistence: "file" (durable local storage) or "firestore".
	CartBackend string
	// Directory for the file backend (one JSON document per buyer).
	CartDataDir string

	// Order persistence: "firestore" or "postgres".
	OrderBackend string
	PostgresDSN  string

	// Bucket holding the product showcase images. Empty disables resolution
	// and the catalog serves raw image paths.
	ProductImageBucket string

	// SendGrid: direct key wins; otherwise the key is fetched from Secret
	// Manager under SendGridSecretName. Both empty disables order mail.
	SendGridAPIKey     string
	SendGridSecretName string
	OrderMailFrom      string

	// CORS origin for the storefront page.
	AllowedOrigin string

	// Upper bound for a single order submission.
	SubmitTimeout time.Duration
}

// Load reads the environment and returns a Config.
func Load() *Config {
	defaultProject := getenvDefault("GCP_PROJECT_ID", "vergilius-nectar")

	cfg := &Config{
		Port:     getenvDefault("PORT", "8080"),
		GCPCreds: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),

		FirestoreProjectID:       getenvDefault("FIRESTORE_PROJECT_ID", defaultProject),
		FirestoreCredentialsFile: os.Getenv("FIRESTORE_CREDENTIALS_FILE"),
		FirebaseProjectID:        getenvDefault("FIREBASE_PROJECT_ID", defaultProject),

		CartBackend: getenvDefault("CART_BACKEND", "file"),
		CartDataDir: getenvDefault("CART_DATA_DIR", "./data/carts"),

		OrderBackend: getenvDefault("ORDER_BACKEND", "firestore"),
		PostgresDSN:  os.Getenv("POSTGRES_DSN"),

		ProductImageBucket: os.Getenv("PRODUCT_IMAGE_BUCKET"),

		SendGridAPIKey:     os.Getenv("SENDGRID_API_KEY"),
		SendGridSecretName: getenvDefault("SENDGRID_SECRET_NAME", "vergilius-sendgrid-api-key"),
		OrderMailFrom:      getenvDefault("ORDER_MAIL_FROM", "ordini@vergilius-nectar.example"),

		AllowedOrigin: getenvDefault("ALLOWED_ORIGIN", "*"),

		SubmitTimeout: getenvSeconds("SUBMIT_TIMEOUT_SECONDS", 15),
	}

	return cfg
}

// GetFirestoreProjectID returns the Firestore/GCP project ID.
func (c *Config) GetFirestoreProjectID() string {
	return c.FirestoreProjectID
}

func (c *Config) GetFirebaseProjectID() string {
	return c.FirebaseProjectID
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvSeconds(key string, def int) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return time.Duration(def) * time.Second
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return time.Duration(def) * time.Second
	}
	return time.Duration(n) * time.Second
}
