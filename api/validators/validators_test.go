package validators

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/angelmondragon/scent-storefront/pkg/errors"
)

type addPayload struct {
	VariantID string `json:"variantId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"min=1,max=99"`
}

func jsonRequest(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
}

func TestDecodeJSONBodyReportsFieldsByJSONName(t *testing.T) {
	var payload addPayload
	err := DecodeJSONBody(jsonRequest(`{"quantity":0}`), &payload)
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	assert.Equal(t, map[string]string{
		"variantId": "is required",
		"quantity":  "must be at least 1",
	}, typed.Details())
}

func TestDecodeJSONRejectsUnknownFields(t *testing.T) {
	var payload addPayload
	err := DecodeJSON(jsonRequest(`{"variantId":"v1","colour":"red"}`), &payload)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))
}

func TestDecodeJSONBodyAcceptsValidPayload(t *testing.T) {
	var payload addPayload
	require.NoError(t, DecodeJSONBody(jsonRequest(`{"variantId":"v1","quantity":2}`), &payload))
	assert.Equal(t, addPayload{VariantID: "v1", Quantity: 2}, payload)
}

func TestParseQueryInt(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?page=3&size=500&bad=x", nil)

	v, err := ParseQueryInt(req, "page", 1, 1, 100)
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	v, err = ParseQueryInt(req, "missing", 7, 1, 100)
	require.NoError(t, err)
	assert.Equal(t, 7, v)

	_, err = ParseQueryInt(req, "size", 1, 1, 100)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))

	_, err = ParseQueryInt(req, "bad", 1, 1, 100)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))
}

func TestParseQueryBoolAndDecimal(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?active=true&min=12.50&max=abc", nil)

	active, err := ParseQueryBool(req, "active")
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.True(t, *active)

	absent, err := ParseQueryBool(req, "nope")
	require.NoError(t, err)
	assert.Nil(t, absent)

	min, err := ParseQueryDecimal(req, "min")
	require.NoError(t, err)
	require.NotNil(t, min)
	assert.Equal(t, "12.5", min.String())

	_, err = ParseQueryDecimal(req, "max")
	assert.Error(t, err)
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "Oud", SanitizeString("  Oud\t", 10))
	assert.Equal(t, "Nước", SanitizeString("Nước hoa", 4))
	assert.Equal(t, "ab", SanitizeString("a\x00b", 0))
}
