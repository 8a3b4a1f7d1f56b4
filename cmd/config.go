package cmd

// Config carries the environment-driven settings for the service.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	PaymentBaseURL string
	PaymentAPIKey  string
}
