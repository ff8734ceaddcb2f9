package resend

// Config holds Resend email provider configuration.
type Config struct {
	APIKey      string `yaml:"api_key"      env:"RESEND_API_KEY"`
	SenderEmail string `yaml:"sender_email" env:"RESEND_FROM_EMAIL"`
	SenderName  string `yaml:"sender_name"  env:"RESEND_FROM_NAME"`
	// BaseURL overrides the API endpoint, e.g. for a local mock.
	BaseURL string `yaml:"base_url" env:"RESEND_BASE_URL"`
}
