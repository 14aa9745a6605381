package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linesmerrill/dl-generator-api/api/handlers"
	"github.com/linesmerrill/dl-generator-api/catalog"
	"github.com/linesmerrill/dl-generator-api/models"
	"github.com/linesmerrill/dl-generator-api/registry"
)

func jurisdiction() handlers.Jurisdiction {
	return handlers.Jurisdiction{Catalog: catalog.Default(), Registry: registry.Default()}
}

func serve(h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestJurisdiction_USStatesHandler(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/v1/jurisdictions/us-states", nil)

	rr := serve(jurisdiction().USStatesHandler, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var got []catalog.USJurisdiction
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Len(t, got, 56)
	assert.Contains(t, rr.Body.String(), `"aamvaCode"`)
}

func TestJurisdiction_CountriesHandler(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/v1/jurisdictions/countries", nil)

	rr := serve(jurisdiction().CountriesHandler, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var got []catalog.Country
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Len(t, got, 14)
	assert.Equal(t, "UK", got[0].Key)
	assert.Equal(t, "BRAZIL", got[13].Key)
	assert.NotContains(t, rr.Body.String(), "pattern")
}

func TestJurisdiction_SubJurisdictionsHandler(t *testing.T) {
	tests := []struct {
		country string
		count   int
	}{
		{"CANADA", 13},
		{"brazil", 12},
		{"GERMANY", 0},
		{"ATLANTIS", 0},
	}
	for _, tt := range tests {
		req := httptest.NewRequest("GET", "/api/v1/jurisdictions/countries/"+tt.country+"/sub-jurisdictions", nil)
		req = mux.SetURLVars(req, map[string]string{"country": tt.country})

		rr := serve(jurisdiction().SubJurisdictionsHandler, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var got []catalog.SubJurisdiction
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Len(t, got, tt.count, tt.country)
		assert.NotEqual(t, "null", strings.TrimSpace(rr.Body.String()))
	}
}

func TestJurisdiction_FieldRequirementsHandler(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/v1/jurisdictions/field-requirements/wy", nil)
	req = mux.SetURLVars(req, map[string]string{"code": "wy"})

	rr := serve(jurisdiction().FieldRequirementsHandler, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var got registry.Profile
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, registry.DefaultCode, got.Code)
	assert.Contains(t, got.RequiredFields, models.FieldDOB)

	req = mux.SetURLVars(httptest.NewRequest("GET", "/", nil), map[string]string{"code": "BRAZIL"})
	rr = serve(jurisdiction().FieldRequirementsHandler, req)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.True(t, got.HasSubJurisdictions)
	assert.Equal(t, []models.FieldID{models.FieldNationalID}, got.SpecialFields)
}

func TestJurisdiction_CodeListHandlers(t *testing.T) {
	rr := serve(jurisdiction().ColorCodesHandler, httptest.NewRequest("GET", "/", nil))
	var colors []catalog.Code
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &colors))
	assert.Len(t, colors, 3)

	rr = serve(jurisdiction().LicenseCategoriesHandler, httptest.NewRequest("GET", "/", nil))
	var categories []catalog.Code
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &categories))
	assert.Len(t, categories, 15)
}

func TestJurisdiction_ValidateFormatHandler(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		valid  bool
	}{
		{"matching state number", `{"jurisdiction":"tx","licenseNumber":"12345678"}`, http.StatusOK, true},
		{"non matching state number", `{"jurisdiction":"TX","licenseNumber":"ABC"}`, http.StatusOK, false},
		{"sub-jurisdiction", `{"jurisdiction":"BR_SP","licenseNumber":"12345678901"}`, http.StatusOK, true},
		{"unknown jurisdiction", `{"jurisdiction":"ZZ","licenseNumber":"1"}`, http.StatusNotFound, false},
		{"bad body", `{`, http.StatusBadRequest, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/v1/jurisdictions/validate-format", strings.NewReader(tt.body))

			rr := serve(jurisdiction().ValidateFormatHandler, req)

			require.Equal(t, tt.status, rr.Code)
			if tt.status != http.StatusOK {
				return
			}
			var got handlers.FormatCheckResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
			assert.Equal(t, tt.valid, got.Valid)
		})
	}
}
