// graphclient/request_builder.go
package graphclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/microsoftgraph/msgraph-sdk-go/models"
	"github.com/microsoftgraph/msgraph-sdk-go/users"
	"go.uber.org/zap"
)

// UsersCallback receives the outcome of a users query. Exactly one of result and err is set.
type UsersCallback func(result models.UserCollectionResponseable, err error)

// RequestBuilder describes a Graph query fluently:
//
//	client.API("users").Version("v1.0").Select("displayName", "mail").Filter(expr).Get(ctx, callback)
//
// Each method returns the builder so calls can be chained. Builders are not safe for concurrent use.
type RequestBuilder struct {
	client       *Client
	path         string
	version      string
	selectFields []string
	filter       string
	top          *int32
}

// Version sets the API version segment, e.g. "v1.0" or "beta".
func (b *RequestBuilder) Version(version string) *RequestBuilder {
	if version = strings.Trim(version, "/ "); version != "" {
		b.version = version
	}
	return b
}

// Select sets the $select projection.
func (b *RequestBuilder) Select(fields ...string) *RequestBuilder {
	for _, field := range fields {
		for _, part := range strings.Split(field, ",") {
			if part = strings.TrimSpace(part); part != "" {
				b.selectFields = append(b.selectFields, part)
			}
		}
	}
	return b
}

// Filter sets the $filter expression. The expression is passed through as is; callers escape
// literals themselves.
func (b *RequestBuilder) Filter(expression string) *RequestBuilder {
	b.filter = expression
	return b
}

// Top limits the page size.
func (b *RequestBuilder) Top(n int32) *RequestBuilder {
	b.top = &n
	return b
}

// Get runs the query and hands the outcome to callback before returning.
func (b *RequestBuilder) Get(ctx context.Context, callback UsersCallback) {
	result, err := b.Execute(ctx)
	callback(result, err)
}

// Execute runs the query and returns its outcome directly.
func (b *RequestBuilder) Execute(ctx context.Context) (models.UserCollectionResponseable, error) {
	if b.path != "users" {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAPI, b.path)
	}

	service, err := b.client.serviceClient(b.version)
	if err != nil {
		return nil, err
	}

	query := &users.UsersRequestBuilderGetQueryParameters{
		Select: b.selectFields,
		Top:    b.top,
	}
	if b.filter != "" {
		filter := b.filter
		query.Filter = &filter
	}

	b.client.logger.Debug("Executing typed Graph query",
		zap.String("api", b.path),
		zap.String("version", b.version),
		zap.Strings("select", b.selectFields),
		zap.String("filter", b.filter),
	)

	result, err := service.Users().Get(ctx, &users.UsersRequestBuilderGetRequestConfiguration{
		QueryParameters: query,
	})
	if err != nil {
		return nil, TranslateError(err)
	}
	return result, nil
}
