// graphclient/errors.go
package graphclient

import (
	"errors"
	"fmt"

	"github.com/microsoftgraph/msgraph-sdk-go/models/odataerrors"
)

// ErrUnsupportedAPI is returned for resource paths the typed client does not know how to query.
var ErrUnsupportedAPI = errors.New("unsupported graph api path")

// GraphError is a readable form of the OData error returned by the SDK.
type GraphError struct {
	Code    string
	Message string
	Err     error
}

func (e *GraphError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("graph request failed: %s", e.Message)
	}
	return fmt.Sprintf("graph request failed: %s: %s", e.Code, e.Message)
}

func (e *GraphError) Unwrap() error {
	return e.Err
}

// TranslateError converts an SDK ODataError into a GraphError; other errors pass through unchanged.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}

	var odataErr *odataerrors.ODataError
	if !errors.As(err, &odataErr) {
		return err
	}

	graphErr := &GraphError{Message: odataErr.Error(), Err: err}
	if main := odataErr.GetError(); main != nil {
		if code := main.GetCode(); code != nil {
			graphErr.Code = *code
		}
		if message := main.GetMessage(); message != nil {
			graphErr.Message = *message
		}
	}
	return graphErr
}
