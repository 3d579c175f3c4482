package api

import (
	"context"
	"net/url"
	"strconv"
)

// resource operaciones CRUD comunes sobre un recurso REST (T = entidad, I = cuerpo de alta/edición).
type resource[T any, I any] struct {
	c    *Client
	path string
}

func (r resource[T, I]) itemPath(id int64) string {
	return r.path + "/" + strconv.FormatInt(id, 10)
}

func (r resource[T, I]) list(ctx context.Context, query url.Values) ([]T, error) {
	var out []T
	if err := r.c.get(ctx, r.path, query, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func (r resource[T, I]) getByID(ctx context.Context, id int64) (*T, error) {
	var out T
	if err := r.c.get(ctx, r.itemPath(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r resource[T, I]) create(ctx context.Context, in I) error {
	return r.c.post(ctx, r.path, nil, in, nil)
}

func (r resource[T, I]) update(ctx context.Context, id int64, in I) error {
	return r.c.put(ctx, r.itemPath(id), in, nil)
}

func (r resource[T, I]) remove(ctx context.Context, id int64) error {
	return r.c.delete(ctx, r.itemPath(id))
}
