package httpclient

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/hashicorp-forge/served/pkg/config"
)

// Config contains configuration for a Client.
type Config struct {
	// Registry resolves the base URL of Namespace on every request.
	Registry *config.Config

	// Namespace selects the host in Registry.Hosts.
	Namespace string

	// ContentType is sent as Content-Type and Accept.
	// Default: "application/json"
	ContentType string

	// TLSVerify overrides Registry.TLSVerify when set.
	TLSVerify *bool

	// Logger for request logging. Defaults to the registry logger.
	Logger hclog.Logger
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Registry == nil {
		return fmt.Errorf("configuration registry is required")
	}
	if c.Namespace == "" {
		return fmt.Errorf("namespace is required")
	}
	if c.Registry.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got: %v", c.Registry.Timeout)
	}
	return nil
}

// NewHTTPClient creates a configured HTTP client
func (c *Config) NewHTTPClient() *http.Client {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}

	verify := c.Registry.TLSVerify
	if c.TLSVerify != nil {
		verify = *c.TLSVerify
	}
	if !verify {
		transport.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: true,
		}
	}

	return &http.Client{
		Timeout:   c.Registry.Timeout,
		Transport: transport,
	}
}
