package form

import (
	"regexp"
	"strings"
	"time"

	"github.com/linesmerrill/dl-generator-api/models"
	"github.com/linesmerrill/dl-generator-api/registry"
)

// Reason explains why a field failed validation
type Reason string

// Validation failure reasons
const (
	ReasonRequired                Reason = "required"
	ReasonMalformed               Reason = "malformed"
	ReasonNotPermitted            Reason = "not_permitted"
	ReasonSubJurisdictionRequired Reason = "sub_jurisdiction_required"
	ReasonSpecialFieldRequired    Reason = "special_field_required"
)

// ValidationResult is the outcome of Validate
type ValidationResult struct {
	Valid  bool                      `json:"valid"`
	Errors map[models.FieldID]Reason `json:"errors"`
}

var (
	datePattern   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	digitsPattern = regexp.MustCompile(`^\d+$`)
	genders       = map[string]bool{"M": true, "F": true, "9": true}
)

// Validate checks the request against the profile of its active jurisdiction.
// It never mutates the request.
func (m *Model) Validate() ValidationResult {
	errs := make(map[models.FieldID]Reason)
	profile := m.registry.ProfileOf(m.selection.Code())

	for _, f := range profile.RequiredFields {
		if !m.present(f) {
			errs[f] = ReasonRequired
		}
	}

	if intl, ok := m.selection.(International); ok {
		m.validateInternational(intl, profile, errs)
	}
	m.validateShape(profile, errs)

	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

func (m *Model) present(f models.FieldID) bool {
	switch f {
	case models.FieldPhoto:
		return m.photo != nil
	case models.FieldOrganDonor, models.FieldVeteran:
		return true
	case models.FieldState:
		d, ok := m.selection.(Domestic)
		return ok && d.Jurisdiction != ""
	case models.FieldCountry:
		i, ok := m.selection.(International)
		return ok && i.Country != ""
	case models.FieldSubJurisdiction:
		i, ok := m.selection.(International)
		return ok && i.SubJurisdiction != ""
	case models.FieldNationalID:
		i, ok := m.selection.(International)
		return ok && strings.TrimSpace(i.NationalID) != ""
	case models.FieldColorCode:
		i, ok := m.selection.(International)
		return ok && i.ColorCode != ""
	case models.FieldLicenseCategories:
		i, ok := m.selection.(International)
		return ok && len(i.Categories) > 0
	}
	return strings.TrimSpace(m.text[f]) != ""
}

func (m *Model) validateInternational(intl International, profile registry.Profile, errs map[models.FieldID]Reason) {
	if profile.HasSubJurisdictions && intl.SubJurisdiction == "" {
		errs[models.FieldSubJurisdiction] = ReasonSubJurisdictionRequired
	}
	for _, sf := range m.catalog.SpecialFieldsOf(intl.Country) {
		if !m.present(sf.Field) {
			if sf.Required {
				errs[sf.Field] = ReasonSpecialFieldRequired
			}
			continue
		}
		switch sf.Field {
		case models.FieldNationalID:
			if d := MaskDigits(sf.Mask); d > 0 && countDigits(intl.NationalID) != d {
				errs[sf.Field] = ReasonMalformed
			}
		case models.FieldColorCode:
			if !m.catalog.IsColorCode(intl.ColorCode) {
				errs[sf.Field] = ReasonMalformed
			}
		}
	}
}

func (m *Model) validateShape(profile registry.Profile, errs map[models.FieldID]Reason) {
	check := func(f models.FieldID, ok func(v string) bool, reason Reason) {
		v := strings.TrimSpace(m.text[f])
		if _, failed := errs[f]; failed || v == "" {
			return
		}
		if !ok(v) {
			errs[f] = reason
		}
	}

	check(models.FieldDOB, isDate, ReasonMalformed)
	check(models.FieldGender, func(v string) bool { return genders[v] }, ReasonMalformed)
	check(models.FieldEyeColor, m.catalog.IsEyeColor, ReasonMalformed)
	check(models.FieldHairColor, m.catalog.IsHairColor, ReasonMalformed)
	check(models.FieldHeight, digitsPattern.MatchString, ReasonMalformed)
	check(models.FieldWeight, digitsPattern.MatchString, ReasonMalformed)
	check(models.FieldLicenseClass, profile.AllowsClass, ReasonNotPermitted)
	check(models.FieldRestrictions, eachOf(profile.AllowsRestriction), ReasonNotPermitted)
	check(models.FieldEndorsements, eachOf(profile.AllowsEndorsement), ReasonNotPermitted)
}

func isDate(v string) bool {
	if !datePattern.MatchString(v) {
		return false
	}
	_, err := time.Parse("2006-01-02", v)
	return err == nil
}

// eachOf applies allowed to every entry of a comma separated list
func eachOf(allowed func(string) bool) func(string) bool {
	return func(v string) bool {
		for _, code := range splitCodes(v) {
			if !allowed(code) {
				return false
			}
		}
		return true
	}
}

func splitCodes(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
