package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/hcl/v2/hclsimple"
)

// ErrUnknownHost is returned when no host is configured for a namespace.
var ErrUnknownHost = errors.New("no host configured for namespace")

const (
	// DefaultSerializer is the codec used when none is configured.
	DefaultSerializer = "json"

	// DefaultTimeout is the request timeout used when none is configured.
	DefaultTimeout = 30 * time.Second
)

// Config is the process-wide configuration shared by every resource kind
// and the HTTP transport. It is built once at startup and passed explicitly.
type Config struct {
	// Hosts maps a namespace (e.g. "some_module") to the base URL of the
	// service that owns its resources.
	Hosts map[string]string

	// Serializer is the name of the codec used on the wire ("json" or "yaml").
	Serializer string

	// UseRootNode wraps payloads under the singular resource name.
	UseRootNode bool

	// Timeout for HTTP requests.
	Timeout time.Duration

	// Headers are sent with every request.
	Headers map[string]string

	// TLSVerify controls certificate verification of HTTPS hosts. Disable
	// only for development against self-signed certificates.
	TLSVerify bool

	// Logger is the root logger. Defaults to a null logger.
	Logger hclog.Logger
}

// FileConfig is the HCL representation of Config.
//
// Example configuration (HCL):
//
//	hosts = {
//	  some_module = "http://localhost:3000"
//	}
//	serializer    = "json"
//	use_root_node = true
//	timeout       = "30s"
//	headers = {
//	  "X-Client" = "served"
//	}
//	tls_verify = true
type FileConfig struct {
	Hosts       map[string]string `hcl:"hosts,optional"`
	Serializer  string            `hcl:"serializer,optional"`
	UseRootNode *bool             `hcl:"use_root_node,optional"`
	Timeout     string            `hcl:"timeout,optional"`
	Headers     map[string]string `hcl:"headers,optional"`
	TLSVerify   *bool             `hcl:"tls_verify,optional"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Hosts:       make(map[string]string),
		Serializer:  DefaultSerializer,
		UseRootNode: true,
		Timeout:     DefaultTimeout,
		Headers:     make(map[string]string),
		TLSVerify:   true,
		Logger:      hclog.NewNullLogger(),
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Serializer, validation.Required),
		validation.Field(&c.Timeout, validation.Required, validation.Min(time.Duration(1))),
		validation.Field(&c.Hosts, validation.Each(validation.Required, is.RequestURL)),
	); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	return nil
}

// Host returns the base URL configured for namespace.
func (c *Config) Host(namespace string) (string, error) {
	host, ok := c.Hosts[namespace]
	if !ok || host == "" {
		return "", fmt.Errorf("%w: %q", ErrUnknownHost, namespace)
	}
	return host, nil
}

// LoadFile loads the configuration from an HCL file. Missing values take
// their defaults.
func LoadFile(filename string) (*Config, error) {
	if filename == "" {
		return nil, fmt.Errorf("configuration file path is required")
	}

	// Check if file exists
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", filename)
	}

	var fc FileConfig
	if err := hclsimple.DecodeFile(filename, nil, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file: %w", err)
	}

	return fc.Config()
}

// Config converts the file representation into a Config, applying defaults.
func (fc *FileConfig) Config() (*Config, error) {
	cfg := DefaultConfig()

	for namespace, host := range fc.Hosts {
		cfg.Hosts[namespace] = host
	}
	for name, value := range fc.Headers {
		cfg.Headers[name] = value
	}
	if fc.Serializer != "" {
		cfg.Serializer = fc.Serializer
	}
	if fc.UseRootNode != nil {
		cfg.UseRootNode = *fc.UseRootNode
	}
	if fc.TLSVerify != nil {
		cfg.TLSVerify = *fc.TLSVerify
	}
	if fc.Timeout != "" {
		timeout, err := time.ParseDuration(fc.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout %q: %w", fc.Timeout, err)
		}
		cfg.Timeout = timeout
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
