// response/success.go
/* Responsible for handling successful API responses. It reads the response body, logs the raw response details,
and unmarshals the response based on the content type (JSON or XML). */
package response

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"

	"github.com/deploymenttheory/go-graph-user-search/logger"
	"go.uber.org/zap"
)

// contentHandler defines the signature for unmarshaling content from an io.Reader.
type contentHandler func(io.Reader, any, logger.Logger, string) error

// responseUnmarshallers maps MIME types to the corresponding contentHandler functions.
var responseUnmarshallers = map[string]contentHandler{
	"application/json": handlerUnmarshalJSON,
	"application/xml":  handlerUnmarshalXML,
	"text/xml":         handlerUnmarshalXML,
}

// HandleAPISuccessResponse reads the response body, logs it at debug level and unmarshals it into out
// based on the content type. A response without a Content-Type is treated as JSON, which is what
// Graph returns for collection queries.
func HandleAPISuccessResponse(resp *http.Response, out any, log logger.Logger) error {
	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return log.Error("Failed to read response body", zap.Error(err))
	}

	log.Debug("Raw HTTP Response", zap.String("body", string(bodyBytes)))

	if out == nil || len(bytes.TrimSpace(bodyBytes)) == 0 {
		return nil
	}

	contentType := resp.Header.Get("Content-Type")
	mimeType, _ := ParseContentTypeHeader(contentType)
	if mimeType == "" {
		mimeType = "application/json"
	}

	handler, ok := responseUnmarshallers[mimeType]
	if !ok {
		return log.Error("Unmarshal error", zap.String("content_type", contentType), zap.Error(fmt.Errorf("unexpected MIME type: %s", contentType)))
	}

	return handler(bytes.NewReader(bodyBytes), out, log, mimeType)
}

func handlerUnmarshalJSON(reader io.Reader, out any, log logger.Logger, mimeType string) error {
	if err := json.NewDecoder(reader).Decode(out); err != nil {
		log.Warn("JSON Unmarshal error", zap.Error(err))
		return fmt.Errorf("decoding %s response: %w", mimeType, err)
	}
	log.Debug("Successfully unmarshalled JSON response", zap.String("content_type", mimeType))
	return nil
}

func handlerUnmarshalXML(reader io.Reader, out any, log logger.Logger, mimeType string) error {
	if err := xml.NewDecoder(reader).Decode(out); err != nil {
		log.Warn("XML Unmarshal error", zap.Error(err))
		return fmt.Errorf("decoding %s response: %w", mimeType, err)
	}
	log.Debug("Successfully unmarshalled XML response", zap.String("content_type", mimeType))
	return nil
}
