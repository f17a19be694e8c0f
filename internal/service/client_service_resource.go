// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/MKhiriev/sim-sekolah/internal/adapter"
	"github.com/MKhiriev/sim-sekolah/internal/logger"
	"github.com/MKhiriev/sim-sekolah/internal/validators"
	"github.com/MKhiriev/sim-sekolah/models"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

type resourceService[T any] struct {
	path      string
	adapter   adapter.ServerAdapter
	validator validators.Validator
	// cache is nil for resources that are never cached.
	cache *expirable.LRU[string, []byte]

	logger *logger.Logger
}

func newResourceService[T any](path string, a adapter.ServerAdapter, v validators.Validator, cache *expirable.LRU[string, []byte], l *logger.Logger) *resourceService[T] {
	return &resourceService[T]{path: path, adapter: a, validator: v, cache: cache, logger: l}
}

func (r *resourceService[T]) List(ctx context.Context, q models.ListQuery) (models.Page[T], error) {
	body, err := r.get(ctx, r.path, listQueryValues(q))
	if err != nil {
		return models.Page[T]{}, err
	}

	var resp models.APIResponse[[]T]
	if err = json.Unmarshal(body, &resp); err != nil {
		return models.Page[T]{}, fmt.Errorf("%w: list %s: %w", ErrMalformedResponse, r.path, err)
	}

	page := models.Page[T]{Items: resp.Data}
	if resp.Pagination != nil {
		page.Pagination = *resp.Pagination
	} else {
		n := len(resp.Data)
		page.Pagination = models.Pagination{Page: 1, Limit: n, Total: int64(n), TotalPages: 1}
	}
	return page, nil
}

func (r *resourceService[T]) Get(ctx context.Context, id int64) (T, error) {
	body, err := r.get(ctx, r.itemPath(id), nil)
	if err != nil {
		var zero T
		return zero, err
	}
	return decodeData[T](body)
}

func (r *resourceService[T]) Create(ctx context.Context, item T) (T, error) {
	return r.write(ctx, http.MethodPost, r.path, item)
}

func (r *resourceService[T]) Update(ctx context.Context, id int64, item T) (T, error) {
	return r.write(ctx, http.MethodPut, r.itemPath(id), item)
}

func (r *resourceService[T]) Delete(ctx context.Context, id int64) error {
	_, err := r.adapter.Do(ctx, adapter.Request{Method: http.MethodDelete, Path: r.itemPath(id)})
	if err != nil {
		return mapAdapterError(err)
	}
	r.invalidate()
	return nil
}

func (r *resourceService[T]) write(ctx context.Context, method, path string, item T) (T, error) {
	var zero T
	if err := r.validator.Validate(ctx, item); err != nil {
		return zero, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	body, err := r.adapter.Do(ctx, adapter.Request{Method: method, Path: path, Body: item})
	if err != nil {
		return zero, mapAdapterError(err)
	}
	r.invalidate()

	r.logger.Debug().
		Str("func", "resourceService.write").
		Str("method", method).
		Str("path", path).
		Msg("resource saved")
	return decodeData[T](body)
}

// get serves GETs, through the cache when the resource has one.
func (r *resourceService[T]) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	return cachedGet(ctx, r.adapter, r.cache, path, query, r.logger)
}

func (r *resourceService[T]) invalidate() {
	invalidatePrefix(r.cache, r.path)
}

func (r *resourceService[T]) itemPath(id int64) string {
	return r.path + "/" + strconv.FormatInt(id, 10)
}

func cachedGet(ctx context.Context, a adapter.ServerAdapter, cache *expirable.LRU[string, []byte], path string, query url.Values, l *logger.Logger) ([]byte, error) {
	key := path
	if len(query) > 0 {
		key += "?" + query.Encode()
	}

	if cache != nil {
		if body, ok := cache.Get(key); ok {
			l.Debug().Str("func", "cachedGet").Str("key", key).Msg("cache hit")
			return body, nil
		}
	}

	body, err := a.Do(ctx, adapter.Request{Method: http.MethodGet, Path: path, Query: query})
	if err != nil {
		return nil, mapAdapterError(err)
	}

	if cache != nil {
		cache.Add(key, body)
	}
	return body, nil
}

// invalidatePrefix drops every cached response under path.
func invalidatePrefix(cache *expirable.LRU[string, []byte], path string) {
	if cache == nil {
		return
	}
	for _, key := range cache.Keys() {
		if key == path || strings.HasPrefix(key, path+"/") || strings.HasPrefix(key, path+"?") {
			cache.Remove(key)
		}
	}
}

func listQueryValues(q models.ListQuery) url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if s := strings.TrimSpace(q.Search); s != "" {
		v.Set("search", s)
	}
	for key, value := range q.Filters {
		if value != "" {
			v.Set(key, value)
		}
	}
	if len(v) == 0 {
		return nil
	}
	return v
}

func decodeData[T any](body []byte) (T, error) {
	var resp models.APIResponse[T]
	if err := json.Unmarshal(body, &resp); err != nil {
		var zero T
		return zero, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return resp.Data, nil
}
