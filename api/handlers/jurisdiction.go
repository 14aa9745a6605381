package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/linesmerrill/dl-generator-api/catalog"
	"github.com/linesmerrill/dl-generator-api/config"
	"github.com/linesmerrill/dl-generator-api/registry"
)

// Jurisdiction serves the read-only reference data
type Jurisdiction struct {
	Catalog  *catalog.Catalog
	Registry *registry.Registry
}

// FormatCheckRequest is the body of ValidateFormatHandler
type FormatCheckRequest struct {
	Jurisdiction  string `json:"jurisdiction"`
	LicenseNumber string `json:"licenseNumber"`
}

// FormatCheckResponse reports whether a license number matches its
// jurisdiction's format
type FormatCheckResponse struct {
	Jurisdiction  string `json:"jurisdiction"`
	LicenseNumber string `json:"licenseNumber"`
	Valid         bool   `json:"valid"`
}

// USStatesHandler returns the US states, DC and territories
func (j Jurisdiction) USStatesHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, j.Catalog.USJurisdictions())
}

// CountriesHandler returns the international countries in catalog order
func (j Jurisdiction) CountriesHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, j.Catalog.ListCountries())
}

// SubJurisdictionsHandler returns the sub-jurisdictions of a country. Unknown
// countries and countries without sub-jurisdictions yield an empty list.
func (j Jurisdiction) SubJurisdictionsHandler(w http.ResponseWriter, r *http.Request) {
	country := mux.Vars(r)["country"]
	zap.S().Debugf("country: %v", country)
	writeJSON(w, http.StatusOK, j.Catalog.SubJurisdictionsOf(country))
}

// FieldRequirementsHandler returns the field profile of a jurisdiction code
func (j Jurisdiction) FieldRequirementsHandler(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(strings.TrimSpace(mux.Vars(r)["code"]))
	writeJSON(w, http.StatusOK, j.Registry.ProfileOf(code))
}

// ColorCodesHandler returns the color coded license scheme
func (j Jurisdiction) ColorCodesHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, j.Catalog.ColorCodes())
}

// LicenseCategoriesHandler returns the EU license categories
func (j Jurisdiction) LicenseCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, j.Catalog.EUCategories())
}

// ValidateFormatHandler checks a license number against the format of a US
// jurisdiction, country or sub-jurisdiction
func (j Jurisdiction) ValidateFormatHandler(w http.ResponseWriter, r *http.Request) {
	var body FormatCheckRequest
	if !decodeBody(w, r, &body) {
		return
	}
	matched, known := j.Catalog.MatchesLicenseFormat(body.Jurisdiction, body.LicenseNumber)
	if !known {
		config.ErrorStatus("failed to find jurisdiction", http.StatusNotFound, w, errors.New(body.Jurisdiction))
		return
	}
	writeJSON(w, http.StatusOK, FormatCheckResponse{
		Jurisdiction:  strings.ToUpper(strings.TrimSpace(body.Jurisdiction)),
		LicenseNumber: body.LicenseNumber,
		Valid:         matched,
	})
}
