package types

import "time"

type ProviderID string

const (
	ProviderRapidAPIAmazon ProviderID = "rapidapi-amazon"
)

// ProviderConfig represents upstream product API configuration
type ProviderConfig struct {
	ID   ProviderID `json:"id" yaml:"id"`
	Name string     `json:"name" yaml:"name"`

	// APIHost is the full search endpoint URL
	APIHost string `json:"api_host" yaml:"api_host"`
	// APIKey may hold several comma-separated keys, used round-robin
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// RapidAPIHost is sent as x-rapidapi-host
	RapidAPIHost string `json:"rapidapi_host,omitempty" yaml:"rapidapi_host,omitempty"`
	Country      string `json:"country,omitempty" yaml:"country,omitempty"`

	Timeout time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
}

// Validate validates the provider configuration
func (c *ProviderConfig) Validate() error {
	if c.ID == "" {
		return ErrInvalidProviderID
	}
	if c.Name == "" {
		return ErrInvalidProviderName
	}
	if c.APIHost == "" {
		return ErrInvalidAPIHost
	}
	if c.ID == ProviderRapidAPIAmazon && c.RapidAPIHost == "" {
		return ErrMissingRapidAPIHost
	}
	return nil
}
