// Package resource maps entities of a remote REST API onto typed,
// validated in-process resources.
//
// # Overview
//
// A Kind declares a resource type: its name, an ordered list of attributes
// and a configuration (codec, root node wrapping, transport, namespace).
// Kinds form a tree through Extend; a child sees its ancestors' attributes
// and configuration and may shadow either without touching the parent.
//
//	users := resource.NewKind("User",
//	    resource.WithTransport(client),
//	).
//	    Attribute("name", resource.Type(resource.String), resource.Validates(resource.Presence())).
//	    Attribute("age", resource.Type(resource.Integer)).
//	    Attribute("admin", resource.Type(resource.Boolean), resource.Default(false))
//
//	u, err := users.Find(ctx, 1)   // GET /users/1.json
//	u.Set("name", "Ada")
//	ok, err := u.Save(ctx)         // PUT /users/1.json
//
// # Coercion
//
// Values are coerced to their declared TypeTag when a resource is built
// (New, Find, lifecycle responses) and when it is dumped to the wire. Set
// stores values as given. Scalar conversions are lenient: a value that
// cannot become an Integer, Float, String or Symbol becomes nil instead of
// an error. Boolean attributes are true only for true and "true".
//
// Lists are coerced element by element, except for Untyped and ArrayOfRaw
// attributes whose lists are kept untouched.
//
// NestedResource and NestedAttributeValueObject build nested values from
// maps. Their construction errors are returned to the caller, as is
// InvalidAttributeSerializer for a tag without a coercion strategy.
//
// # Validation
//
// Validate evaluates every rule of every attribute (Presence, Numericality,
// Format, Inclusion) and replaces the resource's Errors. It never returns an
// error; Errors.Err folds the messages into one when a caller wants one.
//
// # Lifecycle
//
//   - Find(id): New({"id": id}) followed by Reload.
//   - Save: POST to the collection path when the resource has no id, PUT to
//     the instance path otherwise.
//   - Reload: GET the instance path.
//   - Destroy: DELETE the instance path.
//
// Each call performs exactly one round trip and is never retried. Responses
// outside 2xx fail with *ServiceError, undecodable bodies with
// *ResponseInvalid.
//
// # Wire format
//
// With root node wrapping (the default) payloads look like
//
//	{"resource_test": {"id": null, "attr1": 1}}
//
// and responses are expected in the same shape.
package resource
