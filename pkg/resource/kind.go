package resource

import (
	"fmt"
	"net/url"

	"github.com/hashicorp/go-hclog"
	"github.com/iancoleman/strcase"
	"github.com/jinzhu/inflection"
	"github.com/spf13/cast"

	"github.com/hashicorp-forge/served/pkg/codec"
)

// Configuration option names used by kinds.
const (
	OptionSerializer  = "serializer"
	OptionUseRootNode = "use_root_node"
	OptionTransport   = "transport"
	OptionNamespace   = "namespace"
)

// Kind is a declared resource type: a name, an ordered attribute schema and
// a configuration inherited from its parent kind.
//
// Kinds are declared once at startup and are not safe for concurrent
// mutation; instances may be used once declaration is complete.
type Kind struct {
	name       string
	parent     *Kind
	attributes []*AttributeDefinition
	config     *Configuration
	logger     hclog.Logger
}

// KindOption configures a kind at declaration.
type KindOption func(*Kind)

// WithCodec sets the wire codec.
func WithCodec(c codec.Codec) KindOption {
	return func(k *Kind) {
		k.config.Set(OptionSerializer, c)
	}
}

// WithRootNode enables or disables root node wrapping.
func WithRootNode(enabled bool) KindOption {
	return func(k *Kind) {
		k.config.Set(OptionUseRootNode, enabled)
	}
}

// WithTransport sets the transport used by lifecycle operations.
func WithTransport(t Transport) KindOption {
	return func(k *Kind) {
		k.config.Set(OptionTransport, t)
	}
}

// WithNamespace sets the namespace used for host resolution.
func WithNamespace(namespace string) KindOption {
	return func(k *Kind) {
		k.config.Set(OptionNamespace, namespace)
	}
}

// WithLogger sets the logger. Child kinds derive theirs from the parent's.
func WithLogger(logger hclog.Logger) KindOption {
	return func(k *Kind) {
		k.logger = logger.Named(k.name)
	}
}

// NewKind declares a root kind with an untyped id attribute, the JSON codec
// and root node wrapping enabled.
func NewKind(name string, opts ...KindOption) *Kind {
	k := &Kind{
		name:   name,
		config: NewConfiguration(nil),
		logger: hclog.NewNullLogger(),
	}
	k.config.Set(OptionSerializer, codec.Codec(codec.JSON{}))
	k.config.Set(OptionUseRootNode, true)
	k.Attribute(IDAttribute)

	for _, opt := range opts {
		opt(k)
	}
	return k
}

// Extend declares a child kind. The child inherits attributes and
// configuration; options and later declarations on the child never affect k.
func (k *Kind) Extend(name string, opts ...KindOption) *Kind {
	child := &Kind{
		name:   name,
		parent: k,
		config: NewConfiguration(k.config),
		logger: k.logger.ResetNamed(name),
	}
	for _, opt := range opts {
		opt(child)
	}
	return child
}

// Name returns the declared name, e.g. "ResourceTest".
func (k *Kind) Name() string {
	return k.name
}

// Parent returns the kind k extends, or nil for a root kind.
func (k *Kind) Parent() *Kind {
	return k.parent
}

// IsA reports whether k is other or extends it.
func (k *Kind) IsA(other *Kind) bool {
	for cur := k; cur != nil; cur = cur.parent {
		if cur == other {
			return true
		}
	}
	return false
}

// Configuration returns the kind's own configuration. Values set on it
// shadow the parent's without modifying them.
func (k *Kind) Configuration() *Configuration {
	return k.config
}

// Codec returns the configured wire codec.
func (k *Kind) Codec() codec.Codec {
	c, ok := ConfigValue[codec.Codec](k.config, OptionSerializer)
	if !ok {
		return codec.JSON{}
	}
	return c
}

// UseRootNode reports whether payloads are wrapped under the singular name.
func (k *Kind) UseRootNode() bool {
	v, _ := ConfigValue[bool](k.config, OptionUseRootNode)
	return v
}

// Transport returns the configured transport, or nil.
func (k *Kind) Transport() Transport {
	t, _ := ConfigValue[Transport](k.config, OptionTransport)
	return t
}

// Namespace returns the configured namespace.
func (k *Kind) Namespace() string {
	ns, _ := ConfigValue[string](k.config, OptionNamespace)
	return ns
}

// Host returns the base URL the kind's transport currently resolves to.
// Transports that do not expose a host report ErrNoTransport.
func (k *Kind) Host() (string, error) {
	h, ok := k.Transport().(interface{ Host() (string, error) })
	if !ok {
		return "", fmt.Errorf("%s: %w", k.name, ErrNoTransport)
	}
	return h.Host()
}

// Logger returns the kind's logger.
func (k *Kind) Logger() hclog.Logger {
	return k.logger
}

// ResourceName returns the pluralized, underscored name ("resource_tests").
func (k *Kind) ResourceName() string {
	return inflection.Plural(strcase.ToSnake(k.name))
}

// SingularName returns the root node key ("resource_test").
func (k *Kind) SingularName() string {
	return inflection.Singular(k.ResourceName())
}

// CollectionPath returns "/{resource_name}.{format}".
func (k *Kind) CollectionPath() string {
	return fmt.Sprintf("/%s.%s", k.ResourceName(), k.Codec().Format())
}

// InstancePath returns "/{resource_name}/{id}.{format}".
func (k *Kind) InstancePath(id any) string {
	return fmt.Sprintf("/%s/%s.%s", k.ResourceName(), url.PathEscape(cast.ToString(id)), k.Codec().Format())
}
