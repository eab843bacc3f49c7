package mail

import "fmt"

// Config defines the SMTP transport settings. They are consumed as opaque
// settings; the engine never inspects them beyond validation.
type Config struct {
	Host        string `json:"host"`
	Port        int    `json:"port"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	UseTLS      bool   `json:"use_tls"`
	FromAddress string `json:"from_address"`
	FromName    string `json:"from_name"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Port == 0 {
		c.Port = 587
	}
	if c.FromName == "" {
		c.FromName = "Fleet Agent"
	}
	if c.FromAddress == "" && c.Username != "" {
		c.FromAddress = c.Username
	}
}

// Validate checks mandatory fields for live sending.
func (c Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("smtp host is required")
	}
	if c.FromAddress == "" {
		return fmt.Errorf("smtp from_address is required")
	}
	return nil
}
