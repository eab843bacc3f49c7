package classify

import "fmt"

// Config defines the classification thresholds and fallback recipient.
type Config struct {
	// DueMilesThreshold is the "due soon" window for service mileage.
	DueMilesThreshold float64 `json:"due_miles_threshold"`
	// DueDaysThreshold is the "due soon" window for MOT expiry.
	DueDaysThreshold int `json:"due_days_threshold"`
	// DefaultRecipient receives alerts for rows without their own contact.
	DefaultRecipient string `json:"default_recipient"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.DueMilesThreshold == 0 {
		c.DueMilesThreshold = 500
	}
	if c.DueDaysThreshold == 0 {
		c.DueDaysThreshold = 30
	}
}

// Validate checks threshold sanity.
func (c Config) Validate() error {
	if c.DueMilesThreshold < 0 {
		return fmt.Errorf("due_miles_threshold must not be negative")
	}
	if c.DueDaysThreshold < 0 {
		return fmt.Errorf("due_days_threshold must not be negative")
	}
	return nil
}
