package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listRequest struct {
	Limit  int  `query:"limit" default:"5" validate:"gte=1,lte=20"`
	DryRun bool `query:"dry_run"`
}

func newContext(method, target string) (echo.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	return echo.New().NewContext(httptest.NewRequest(method, target, nil), rec), rec
}

func TestReadAndValidateRequestDefaults(t *testing.T) {
	c, _ := newContext(http.MethodGet, "/")
	req := &listRequest{}

	require.Nil(t, ReadAndValidateRequest(c, req))
	assert.Equal(t, 5, req.Limit)
}

func TestReadAndValidateRequestBindsQueryOnPost(t *testing.T) {
	c, _ := newContext(http.MethodPost, "/?dry_run=true&limit=3")
	req := &listRequest{}

	require.Nil(t, ReadAndValidateRequest(c, req))
	assert.True(t, req.DryRun)
	assert.Equal(t, 3, req.Limit)
}

func TestReadAndValidateRequestErrors(t *testing.T) {
	c, _ := newContext(http.MethodGet, "/?limit=50")
	errs := ReadAndValidateRequest(c, &listRequest{})
	require.Len(t, errs, 1)
	assert.Equal(t, "ERR_LTE", errs[0].Code)
	assert.Equal(t, "Limit", errs[0].Field)
	assert.Equal(t, map[string]interface{}{"max": "20"}, errs[0].Params)

	c, _ = newContext(http.MethodPost, "/?dry_run=maybe")
	errs = ReadAndValidateRequest(c, &listRequest{})
	require.Len(t, errs, 1)
	assert.Equal(t, "ERR_BIND", errs[0].Code)
}

func TestResponses(t *testing.T) {
	c, rec := newContext(http.MethodGet, "/")
	require.NoError(t, SuccessResponse(c, map[string]int{"n": 1}))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":200,"message":"OK","data":{"n":1}}`, rec.Body.String())

	c, rec = newContext(http.MethodGet, "/")
	require.NoError(t, BadRequestResponse(c, []FieldError{{Code: "ERR_BIND", Message: "bad"}}))
	var res Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Equal(t, "Bad Request", res.Message)

	c, rec = newContext(http.MethodGet, "/")
	require.NoError(t, InternalServerErrorResponse(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
