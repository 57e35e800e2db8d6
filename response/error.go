// response/error.go
// This package provides utility functions and structures for handling and categorizing HTTP error responses.
package response

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/deploymenttheory/go-graph-user-search/logger"
	"github.com/deploymenttheory/go-graph-user-search/status"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// APIError represents an api error response.
type APIError struct {
	StatusCode  int    `json:"status_code"` // HTTP status code
	Method      string `json:"method"`      // HTTP method used for the request
	URL         string `json:"url"`         // The URL of the HTTP request
	Code        string `json:"code,omitempty"`
	Message     string `json:"message"`              // Summary of the error
	RequestID   string `json:"request_id,omitempty"` // Graph request-id from innerError
	RawResponse string `json:"raw_response"`         // Raw response body for debugging
}

// graphErrorEnvelope is the OData error body Microsoft Graph returns for failed calls.
type graphErrorEnvelope struct {
	Error struct {
		Code       string `json:"code"`
		Message    string `json:"message"`
		InnerError struct {
			RequestID       string `json:"request-id"`
			ClientRequestID string `json:"client-request-id"`
		} `json:"innerError"`
	} `json:"error"`
}

// Error returns a string representation of the APIError, making it compatible with the error interface.
func (e *APIError) Error() string {
	message := e.Message
	if message == "" {
		message = http.StatusText(e.StatusCode)
	}
	if e.Code != "" {
		return fmt.Sprintf("API Error: StatusCode=%d, Code=%s, Message=%s", e.StatusCode, e.Code, message)
	}
	return fmt.Sprintf("API Error: StatusCode=%d, Message=%s", e.StatusCode, message)
}

// HandleAPIErrorResponse builds an APIError from a non-2xx response and logs it.
func HandleAPIErrorResponse(resp *http.Response, log logger.Logger) *APIError {
	apiError := &APIError{
		StatusCode: resp.StatusCode,
		Message:    status.TranslateStatusCode(resp.StatusCode),
	}
	if resp.Request != nil {
		apiError.Method = resp.Request.Method
		apiError.URL = resp.Request.URL.String()
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		apiError.RawResponse = "Failed to read response body"
		log.LogError("api_error", apiError.Method, apiError.URL, apiError.StatusCode, resp.Status, err, apiError.RawResponse)
		return apiError
	}

	mimeType, _ := ParseContentTypeHeader(resp.Header.Get("Content-Type"))
	switch mimeType {
	case "application/json":
		parseJSONResponse(bodyBytes, apiError)
	case "application/xml", "text/xml":
		parseXMLResponse(bodyBytes, apiError)
	case "text/html":
		parseHTMLResponse(bodyBytes, apiError)
	case "text/plain":
		parseTextResponse(bodyBytes, apiError)
	default:
		apiError.RawResponse = string(bodyBytes)
	}

	log.LogError("api_error", apiError.Method, apiError.URL, apiError.StatusCode, resp.Status, apiError, apiError.RawResponse)
	if apiError.RequestID != "" {
		log.Debug("Graph request correlation", zap.String("graph_request_id", apiError.RequestID))
	}

	return apiError
}

// parseJSONResponse reads the Graph OData error envelope; bodies of any other shape are kept raw.
func parseJSONResponse(bodyBytes []byte, apiError *APIError) {
	apiError.RawResponse = string(bodyBytes)

	var envelope graphErrorEnvelope
	if err := json.Unmarshal(bodyBytes, &envelope); err != nil {
		return
	}
	if envelope.Error.Code != "" {
		apiError.Code = envelope.Error.Code
	}
	if envelope.Error.Message != "" {
		apiError.Message = envelope.Error.Message
	}
	apiError.RequestID = envelope.Error.InnerError.RequestID
}

// parseXMLResponse dynamically parses XML error responses and accumulates potential error messages.
func parseXMLResponse(bodyBytes []byte, apiError *APIError) {
	apiError.RawResponse = string(bodyBytes)

	doc, err := xmlquery.Parse(bytes.NewReader(bodyBytes))
	if err != nil {
		return
	}

	var messages []string
	var traverse func(*xmlquery.Node)
	traverse = func(n *xmlquery.Node) {
		if n.Type == xmlquery.TextNode && strings.TrimSpace(n.Data) != "" {
			messages = append(messages, strings.TrimSpace(n.Data))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}

	traverse(doc)

	if len(messages) > 0 {
		apiError.Message = strings.Join(messages, "; ")
	}
}

// parseTextResponse uses a plain text body as the message.
func parseTextResponse(bodyBytes []byte, apiError *APIError) {
	bodyText := strings.TrimSpace(string(bodyBytes))
	apiError.RawResponse = string(bodyBytes)
	if bodyText != "" {
		apiError.Message = bodyText
	}
}

// parseHTMLResponse extracts text from <p> tags of an HTML error page, typically served by
// a proxy or gateway sitting in front of Graph.
func parseHTMLResponse(bodyBytes []byte, apiError *APIError) {
	apiError.RawResponse = string(bodyBytes)

	doc, err := html.Parse(bytes.NewReader(bodyBytes))
	if err != nil {
		return
	}

	var messages []string
	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "p" {
			var pContent strings.Builder
			var traverseChildren func(*html.Node)
			traverseChildren = func(c *html.Node) {
				switch {
				case c.Type == html.TextNode:
					pContent.WriteString(strings.TrimSpace(c.Data) + " ")
				case c.Type == html.ElementNode && c.Data == "a":
					for _, attr := range c.Attr {
						if attr.Key == "href" {
							pContent.WriteString("[Link: " + attr.Val + "] ")
							break
						}
					}
				}
				for child := c.FirstChild; child != nil; child = child.NextSibling {
					traverseChildren(child)
				}
			}
			for child := n.FirstChild; child != nil; child = child.NextSibling {
				traverseChildren(child)
			}
			if content := strings.TrimSpace(pContent.String()); content != "" {
				messages = append(messages, content)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}

	parse(doc)

	if len(messages) > 0 {
		apiError.Message = strings.Join(messages, "; ")
	}
}
