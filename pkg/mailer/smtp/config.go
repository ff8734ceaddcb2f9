package smtp

import "time"

// TLS modes understood by Config.TLSMode.
const (
	TLSAuto     = "auto"
	TLSStartTLS = "starttls"
	TLSSSL      = "ssl"
	TLSNone     = "none"
)

// Config holds SMTP server settings.
type Config struct {
	Host        string        `yaml:"host"         env:"SMTP_HOST"`
	Username    string        `yaml:"username"     env:"SMTP_USERNAME"`
	Password    string        `yaml:"password"     env:"SMTP_PASSWORD"`
	SenderEmail string        `yaml:"sender_email" env:"SMTP_FROM_EMAIL"`
	SenderName  string        `yaml:"sender_name"  env:"SMTP_FROM_NAME"`
	TLSMode     string        `yaml:"tls_mode"     env:"SMTP_TLS_MODE" envDefault:"auto"`
	LocalName   string        `yaml:"local_name"   env:"SMTP_LOCAL_NAME"`
	Port        int           `yaml:"port"         env:"SMTP_PORT" envDefault:"587"`
	Timeout     time.Duration `yaml:"timeout"      env:"SMTP_TIMEOUT"`
	// InsecureSkipVerify disables certificate checks. Local development only.
	InsecureSkipVerify bool `yaml:"insecure_skip_verify" env:"SMTP_INSECURE_SKIP_VERIFY"`
}
