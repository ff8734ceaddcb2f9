package s3fs

// DefaultRegion is used when Config.Region is empty.
const DefaultRegion = "us-east-1"

// Config holds S3-compatible storage configuration.
type Config struct {
	// Bucket is the S3 bucket name (required).
	Bucket string `yaml:"bucket" env:"S3_BUCKET"`

	// Prefix is prepended to every name, e.g. "emails".
	Prefix string `yaml:"prefix" env:"S3_PREFIX"`

	// AccessKey and SecretKey are static credentials (required).
	AccessKey string `yaml:"access_key" env:"S3_ACCESS_KEY"`
	SecretKey string `yaml:"secret_key" env:"S3_SECRET_KEY"`

	// Region is the AWS region (default: us-east-1).
	Region string `yaml:"region" env:"S3_REGION"`

	// Endpoint is a custom endpoint for MinIO, R2, DigitalOcean Spaces.
	Endpoint string `yaml:"endpoint" env:"S3_ENDPOINT"`

	// PathStyle enables path-style addressing (required for MinIO).
	PathStyle bool `yaml:"path_style" env:"S3_PATH_STYLE"`
}

func (c *Config) applyDefaults() {
	if c.Region == "" {
		c.Region = DefaultRegion
	}
}

func (c *Config) validate() error {
	if c.Bucket == "" || c.AccessKey == "" || c.SecretKey == "" {
		return ErrInvalidConfig
	}
	return nil
}
