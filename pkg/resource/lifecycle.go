package resource

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp-forge/served/pkg/httpclient"
)

// ErrMissingID is returned by operations that need a persisted resource.
var ErrMissingID = errors.New("resource has no id")

// Transport performs one HTTP round trip per call. Implementations return
// non-2xx responses without error.
type Transport interface {
	Get(ctx context.Context, path string) (*httpclient.Response, error)
	Post(ctx context.Context, path string, body []byte) (*httpclient.Response, error)
	Put(ctx context.Context, path string, body []byte) (*httpclient.Response, error)
	Delete(ctx context.Context, path string) (*httpclient.Response, error)
}

var _ Transport = (*httpclient.Client)(nil)

// Find builds a resource with the given id and reloads it.
func (k *Kind) Find(ctx context.Context, id any) (*Resource, error) {
	r, err := k.New(map[string]any{IDAttribute: id})
	if err != nil {
		return nil, err
	}
	if err := r.Reload(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

// Save creates the resource when it is new and updates it otherwise. On
// success the attributes are reassigned from the response entity.
//
// A non-2xx response returns false and a *ServiceError; an undecodable
// response returns false and a *ResponseInvalid.
func (r *Resource) Save(ctx context.Context) (bool, error) {
	transport, err := r.transport()
	if err != nil {
		return false, err
	}

	body, err := r.Dump()
	if err != nil {
		return false, fmt.Errorf("failed to encode %s: %w", r.kind.name, err)
	}

	var resp *httpclient.Response
	if r.IsNew() {
		path := r.kind.CollectionPath()
		r.kind.logger.Debug("creating resource", "path", path)
		resp, err = transport.Post(ctx, path, body)
	} else {
		path := r.kind.InstancePath(r.ID())
		r.kind.logger.Debug("updating resource", "path", path)
		resp, err = transport.Put(ctx, path, body)
	}
	if err != nil {
		return false, fmt.Errorf("failed to save %s: %w", r.kind.name, err)
	}

	if err := r.HandleResponse(resp); err != nil {
		return false, err
	}
	return true, nil
}

// Reload fetches the resource by id and reassigns its attributes.
func (r *Resource) Reload(ctx context.Context) error {
	transport, err := r.transport()
	if err != nil {
		return err
	}
	if r.IsNew() {
		return fmt.Errorf("cannot reload %s: %w", r.kind.name, ErrMissingID)
	}

	path := r.kind.InstancePath(r.ID())
	r.kind.logger.Debug("reloading resource", "path", path)

	resp, err := transport.Get(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to reload %s: %w", r.kind.name, err)
	}
	return r.HandleResponse(resp)
}

// Destroy deletes the resource. The response body is not interpreted.
func (r *Resource) Destroy(ctx context.Context) (bool, error) {
	transport, err := r.transport()
	if err != nil {
		return false, err
	}
	if r.IsNew() {
		return false, fmt.Errorf("cannot destroy %s: %w", r.kind.name, ErrMissingID)
	}

	path := r.kind.InstancePath(r.ID())
	r.kind.logger.Debug("destroying resource", "path", path)

	resp, err := transport.Delete(ctx, path)
	if err != nil {
		return false, fmt.Errorf("failed to destroy %s: %w", r.kind.name, err)
	}
	if !resp.Success() {
		return false, r.serviceError(resp)
	}
	return true, nil
}

// HandleResponse classifies resp. Statuses outside 2xx fail with
// *ServiceError; otherwise the body is decoded and the entity's attributes
// are assigned to r.
func (r *Resource) HandleResponse(resp *httpclient.Response) error {
	if !resp.Success() {
		return r.serviceError(resp)
	}

	decoded, err := r.kind.Load(resp.Body)
	if err != nil {
		return err
	}
	entity, err := r.kind.entity(decoded)
	if err != nil {
		return err
	}
	return r.assign(entity, false)
}

func (r *Resource) serviceError(resp *httpclient.Response) error {
	r.kind.logger.Debug("service error", "status", resp.StatusCode)
	return &ServiceError{
		Kind:       r.kind.name,
		StatusCode: resp.StatusCode,
		Body:       resp.Body,
	}
}

func (r *Resource) transport() (Transport, error) {
	t := r.kind.Transport()
	if t == nil {
		return nil, fmt.Errorf("%s: %w", r.kind.name, ErrNoTransport)
	}
	return t, nil
}
