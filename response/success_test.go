// response/success_test.go
package response

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/deploymenttheory/go-graph-user-search/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userList struct {
	Value []struct {
		DisplayName string `json:"displayName" xml:"displayName"`
	} `json:"value" xml:"value"`
}

func newSuccessResponse(contentType, body string) *http.Response {
	header := http.Header{}
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     header,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestHandleAPISuccessResponse_JSON(t *testing.T) {
	var out userList
	resp := newSuccessResponse("application/json;odata.metadata=minimal", `{"value":[{"displayName":"Ada Lovelace"}]}`)

	err := HandleAPISuccessResponse(resp, &out, logger.NewNopLogger())

	require.NoError(t, err)
	require.Len(t, out.Value, 1)
	assert.Equal(t, "Ada Lovelace", out.Value[0].DisplayName)
}

func TestHandleAPISuccessResponse_MissingContentTypeDefaultsToJSON(t *testing.T) {
	var out userList
	err := HandleAPISuccessResponse(newSuccessResponse("", `{"value":[]}`), &out, logger.NewNopLogger())

	require.NoError(t, err)
	assert.Empty(t, out.Value)
}

func TestHandleAPISuccessResponse_XML(t *testing.T) {
	var out userList
	resp := newSuccessResponse("text/xml", `<users><value><displayName>Grace</displayName></value></users>`)

	err := HandleAPISuccessResponse(resp, &out, logger.NewNopLogger())

	require.NoError(t, err)
	require.Len(t, out.Value, 1)
	assert.Equal(t, "Grace", out.Value[0].DisplayName)
}

func TestHandleAPISuccessResponse_Errors(t *testing.T) {
	var out userList

	err := HandleAPISuccessResponse(newSuccessResponse("application/json", `{"value":`), &out, logger.NewNopLogger())
	assert.Error(t, err)

	err = HandleAPISuccessResponse(newSuccessResponse("image/png", `png`), &out, logger.NewNopLogger())
	assert.EqualError(t, err, "Unmarshal error")
}

func TestHandleAPISuccessResponse_EmptyBody(t *testing.T) {
	var out userList
	err := HandleAPISuccessResponse(newSuccessResponse("application/json", ""), &out, logger.NewNopLogger())
	assert.NoError(t, err)
}

func TestParseContentTypeHeader(t *testing.T) {
	mimeType, params := ParseContentTypeHeader(`Application/JSON; charset="utf-8"; odata.metadata=minimal`)

	assert.Equal(t, "application/json", mimeType)
	assert.Equal(t, "utf-8", params["charset"])
	assert.Equal(t, "minimal", params["odata.metadata"])
}
