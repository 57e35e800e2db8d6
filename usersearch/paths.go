// usersearch/paths.go
package usersearch

import (
	"context"
	"fmt"

	"github.com/deploymenttheory/go-graph-user-search/odata"
	"github.com/microsoftgraph/msgraph-sdk-go/models"
)

// searchWithAadHttpClient issues one GET of /<version>/users with a hand-built query string.
func (c *Component) searchWithAadHttpClient(ctx context.Context, query string) ([]UserRecord, error) {
	if c.aadFactory == nil {
		return nil, fmt.Errorf("aad client factory is not configured")
	}

	client, err := c.aadFactory.GetClient(ctx, c.resource)
	if err != nil {
		return nil, fmt.Errorf("acquiring aad http client: %w", err)
	}

	endpoint := fmt.Sprintf("/%s/users?%s", c.apiVersion, odata.UsersQuery(query))

	var body userCollectionResponse
	if _, err := client.Get(ctx, endpoint, &body); err != nil {
		return nil, fmt.Errorf("querying users: %w", err)
	}

	records := make([]UserRecord, len(body.Value))
	copy(records, body.Value)
	return records, nil
}

// searchWithGraphClient builds the same query through the typed client's fluent builder.
func (c *Component) searchWithGraphClient(ctx context.Context, query string) ([]UserRecord, error) {
	if c.graphFactory == nil {
		return nil, fmt.Errorf("graph client factory is not configured")
	}

	client, err := c.graphFactory.GetClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquiring graph client: %w", err)
	}

	var records []UserRecord
	var searchErr error
	client.API("users").
		Version(c.apiVersion).
		Select(odata.UserSelectFields...).
		Filter(odata.UserSearchFilter(query)).
		Get(ctx, func(result models.UserCollectionResponseable, err error) {
			if err != nil {
				searchErr = fmt.Errorf("querying users: %w", err)
				return
			}
			if result == nil {
				records = []UserRecord{}
				return
			}
			records = recordsFromModels(result.GetValue())
		})

	if searchErr != nil {
		return nil, searchErr
	}
	return records, nil
}
