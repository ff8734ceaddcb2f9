package mailgun

// Config holds Mailgun email provider configuration.
type Config struct {
	APIKey      string `yaml:"api_key"      env:"MAILGUN_API_KEY"`
	Domain      string `yaml:"domain"       env:"MAILGUN_DOMAIN"`
	SenderEmail string `yaml:"sender_email" env:"MAILGUN_FROM_EMAIL"`
	SenderName  string `yaml:"sender_name"  env:"MAILGUN_FROM_NAME"`
	// Region selects the API region: "us" (default) or "eu".
	Region string `yaml:"region" env:"MAILGUN_REGION"`
	// BaseURL overrides the API base, including the version segment.
	BaseURL string `yaml:"base_url" env:"MAILGUN_BASE_URL"`
}
