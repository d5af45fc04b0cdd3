// Package served declares REST resource kinds against a shared configuration.
//
// A Served value owns the process configuration, the selected wire codec and
// one HTTP client per namespace. Kinds declared through it extend a common
// base kind, so codec and root node settings changed on the base are seen by
// every declared kind.
//
//	cfg, err := served.LoadFile("served.hcl")
//	...
//	s, err := served.New(cfg)
//	...
//	users, err := s.Declare("SomeModule", "User")
//	users.Attribute("name", resource.Type(resource.String))
//
//	u, err := users.Find(ctx, 1)
package served

import (
	"fmt"
	"sync"

	"github.com/hashicorp/go-hclog"
	"github.com/iancoleman/strcase"

	"github.com/hashicorp-forge/served/pkg/codec"
	"github.com/hashicorp-forge/served/pkg/config"
	"github.com/hashicorp-forge/served/pkg/httpclient"
	"github.com/hashicorp-forge/served/pkg/resource"
)

// BaseKindName is the name of the kind every declared kind extends.
const BaseKindName = "Resource"

// Served is the entry point for declaring resource kinds.
type Served struct {
	config *config.Config
	codecs *codec.Registry
	base   *resource.Kind
	logger hclog.Logger

	mu      sync.Mutex
	clients map[string]*httpclient.Client
}

// New validates cfg and builds the base kind from it.
func New(cfg *config.Config) (*Served, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	logger = logger.Named("served")

	codecs := codec.NewRegistry()
	c, err := codecs.Get(cfg.Serializer)
	if err != nil {
		return nil, err
	}

	s := &Served{
		config:  cfg,
		codecs:  codecs,
		logger:  logger,
		clients: make(map[string]*httpclient.Client),
	}
	s.base = resource.NewKind(BaseKindName,
		resource.WithCodec(c),
		resource.WithRootNode(cfg.UseRootNode),
		resource.WithLogger(logger),
	)

	logger.Debug("initialized",
		"serializer", c.Format(),
		"use_root_node", cfg.UseRootNode,
		"namespaces", len(cfg.Hosts),
	)
	return s, nil
}

// LoadFile reads an HCL configuration file and calls New with it.
func LoadFile(filename string) (*Served, error) {
	cfg, err := config.LoadFile(filename)
	if err != nil {
		return nil, err
	}
	return New(cfg)
}

// Config returns the configuration. Host changes made to it are seen by the
// next request of every client.
func (s *Served) Config() *config.Config {
	return s.config
}

// Codecs returns the codec registry. Kinds may pick a codec other than the
// configured serializer with resource.WithCodec.
func (s *Served) Codecs() *codec.Registry {
	return s.codecs
}

// Base returns the kind every declared kind extends.
func (s *Served) Base() *resource.Kind {
	return s.base
}

// Client returns the HTTP client for namespace, creating it on first use.
func (s *Served) Client(namespace string) (*httpclient.Client, error) {
	namespace = strcase.ToSnake(namespace)

	s.mu.Lock()
	defer s.mu.Unlock()

	if client, ok := s.clients[namespace]; ok {
		return client, nil
	}

	client, err := httpclient.New(&httpclient.Config{
		Registry:    s.config,
		Namespace:   namespace,
		ContentType: s.base.Codec().ContentType(),
		Logger:      s.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client for %q: %w", namespace, err)
	}
	s.clients[namespace] = client
	return client, nil
}

// Declare creates a kind named name in namespace. The namespace is
// snake-cased ("SomeModule" becomes "some_module") and selects the host the
// kind's requests go to. opts are applied after the transport is set, so a
// caller may replace it.
func (s *Served) Declare(namespace, name string, opts ...resource.KindOption) (*resource.Kind, error) {
	client, err := s.Client(namespace)
	if err != nil {
		return nil, err
	}

	kindOpts := append([]resource.KindOption{
		resource.WithNamespace(strcase.ToSnake(namespace)),
		resource.WithTransport(client),
	}, opts...)

	k := s.base.Extend(name, kindOpts...)
	s.logger.Debug("declared kind", "kind", name, "namespace", k.Namespace())
	return k, nil
}
