// Package form holds the in-progress license request: the entered values, the
// domestic or international jurisdiction selection and the rules that gate
// submission.
package form

import (
	"fmt"
	"strings"

	"github.com/linesmerrill/dl-generator-api/catalog"
	"github.com/linesmerrill/dl-generator-api/models"
	"github.com/linesmerrill/dl-generator-api/registry"
)

// Defaults applied to a new or reset request
const (
	DefaultJurisdiction = "TX"
	DefaultCountry      = "GERMANY"
	DefaultCategory     = "B"
	DefaultColorCode    = "BLUE"
	DefaultGender       = "M"
	DefaultEyeColor     = "BRO"
	DefaultHairColor    = "BRO"
	DefaultClass        = "C"
)

// Model is a single operator's request. It is not safe for concurrent use;
// callers serialize access.
type Model struct {
	catalog  *catalog.Catalog
	registry *registry.Registry

	text       map[models.FieldID]string
	organDonor bool
	veteran    bool
	photo      *Photo
	selection  Selection
	// categoryOrder lists every category toggled since the country was
	// selected, in first-seen order. Categories are always emitted in it.
	categoryOrder []string
}

// textFields are the free entry fields settable through SetField
var textFields = []models.FieldID{
	models.FieldFirstName,
	models.FieldMiddleName,
	models.FieldLastName,
	models.FieldNameSuffix,
	models.FieldDOB,
	models.FieldGender,
	models.FieldAddress,
	models.FieldAddressLine2,
	models.FieldCity,
	models.FieldZipCode,
	models.FieldHeight,
	models.FieldWeight,
	models.FieldEyeColor,
	models.FieldHairColor,
	models.FieldLicenseClass,
	models.FieldRestrictions,
	models.FieldEndorsements,
}

// IsTextField reports whether f is set through SetField
func IsTextField(f models.FieldID) bool {
	for _, t := range textFields {
		if t == f {
			return true
		}
	}
	return false
}

// IsFlagField reports whether f is set through SetFlag
func IsFlagField(f models.FieldID) bool {
	return f == models.FieldOrganDonor || f == models.FieldVeteran
}

// New returns a request with the default values, backed by the embedded
// catalog and registry
func New() *Model {
	return NewWith(catalog.Default(), registry.Default())
}

// NewWith returns a request backed by the given reference data
func NewWith(cat *catalog.Catalog, reg *registry.Registry) *Model {
	m := &Model{catalog: cat, registry: reg}
	m.Reset()
	return m
}

// Reset discards every entered value and restores the defaults
func (m *Model) Reset() {
	m.text = map[models.FieldID]string{
		models.FieldGender:       DefaultGender,
		models.FieldEyeColor:     DefaultEyeColor,
		models.FieldHairColor:    DefaultHairColor,
		models.FieldLicenseClass: DefaultClass,
	}
	m.organDonor = false
	m.veteran = false
	m.photo = nil
	m.selection = Domestic{Jurisdiction: DefaultJurisdiction}
	m.categoryOrder = nil
}

// Selection returns the current jurisdiction selection
func (m *Model) Selection() Selection {
	if intl, ok := m.selection.(International); ok {
		return intl.clone()
	}
	return m.selection
}

// Field returns the value of a text field
func (m *Model) Field(f models.FieldID) string {
	return m.text[f]
}

// SetField stores the value of a free entry field. Selection, flag and photo
// fields have their own operations.
func (m *Model) SetField(f models.FieldID, value string) error {
	if !IsTextField(f) {
		return fmt.Errorf("%w: %s", ErrUnknownField, f)
	}
	m.text[f] = value
	return nil
}

// SetFlag sets the organ donor or veteran indicator
func (m *Model) SetFlag(f models.FieldID, on bool) error {
	switch f {
	case models.FieldOrganDonor:
		m.organDonor = on
	case models.FieldVeteran:
		m.veteran = on
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, f)
	}
	return nil
}

// SetJurisdictionMode switches between domestic and international entry. The
// values of the mode being left are discarded; international starts on the
// default country and domestic on the default jurisdiction. Selecting the
// current mode is a no-op.
func (m *Model) SetJurisdictionMode(international bool) {
	if international == (m.selection.Mode() == ModeInternational) {
		return
	}
	if !international {
		m.selection = Domestic{Jurisdiction: DefaultJurisdiction}
		return
	}
	m.selection = m.internationalFor(DefaultCountry)
}

// SelectJurisdiction picks the US jurisdiction of a domestic request
func (m *Model) SelectJurisdiction(code string) error {
	if m.selection.Mode() != ModeDomestic {
		return ErrNotDomestic
	}
	j, ok := m.catalog.USJurisdiction(code)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownJurisdiction, code)
	}
	m.selection = Domestic{Jurisdiction: j.Code}
	return nil
}

// SelectCountry picks the country of an international request and derives its
// country specific values from the catalog: the first sub-jurisdiction, the
// default category for bloc countries and the default color code for color
// coded licenses. Values belonging to the previous country are dropped.
func (m *Model) SelectCountry(key string) error {
	if m.selection.Mode() != ModeInternational {
		return ErrNotInternational
	}
	country, ok := m.catalog.Country(key)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCountry, key)
	}
	m.selection = m.internationalFor(country.Key)
	return nil
}

func (m *Model) internationalFor(key string) International {
	intl := International{Country: key}
	if m.registry.ProfileOf(key).HasSubJurisdictions {
		if subs := m.catalog.SubJurisdictionsOf(key); len(subs) > 0 {
			intl.SubJurisdiction = subs[0].Code
		}
	}
	m.categoryOrder = nil
	if m.catalog.IsRegionalBloc(key) {
		intl.Categories = []string{DefaultCategory}
		m.categoryOrder = []string{DefaultCategory}
	}
	if _, ok := m.catalog.SpecialField(key, models.FieldColorCode); ok {
		intl.ColorCode = DefaultColorCode
	}
	return intl
}

// SelectSubJurisdiction overrides the sub-jurisdiction of the selected country
func (m *Model) SelectSubJurisdiction(code string) error {
	intl, ok := m.selection.(International)
	if !ok {
		return ErrNotInternational
	}
	if len(m.catalog.SubJurisdictionsOf(intl.Country)) == 0 {
		return fmt.Errorf("%w: %s", ErrNoSubJurisdictions, intl.Country)
	}
	sub, ok := m.catalog.SubJurisdiction(intl.Country, code)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSubJurisdiction, code)
	}
	intl.SubJurisdiction = sub.Code
	m.selection = intl
	return nil
}

// ToggleCategory adds a license category to a bloc country request, or
// removes it when already present. Categories keep the order in which they
// were first toggled, so toggling a code twice leaves the list unchanged.
func (m *Model) ToggleCategory(code string) error {
	intl, ok := m.selection.(International)
	if !ok {
		return ErrNotInternational
	}
	if !m.catalog.IsRegionalBloc(intl.Country) {
		return fmt.Errorf("%w: %s", ErrNotRegionalBloc, intl.Country)
	}
	code = strings.ToUpper(strings.TrimSpace(code))
	if !m.catalog.IsEUCategory(code) {
		return fmt.Errorf("%w: %s", ErrUnknownCategory, code)
	}
	selected := make(map[string]bool, len(intl.Categories)+1)
	for _, c := range intl.Categories {
		selected[c] = true
	}
	selected[code] = !selected[code]
	if !containsString(m.categoryOrder, code) {
		m.categoryOrder = append(m.categoryOrder, code)
	}
	next := make([]string, 0, len(selected))
	for _, c := range m.categoryOrder {
		if selected[c] {
			next = append(next, c)
		}
	}
	intl.Categories = next
	m.selection = intl
	return nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// SetSpecialField stores a country specific value. The selected country must
// declare the field; its input mask, if any, is applied to raw.
func (m *Model) SetSpecialField(f models.FieldID, raw string) error {
	intl, ok := m.selection.(International)
	if !ok {
		return ErrNotInternational
	}
	decl, ok := m.catalog.SpecialField(intl.Country, f)
	if !ok {
		return fmt.Errorf("%w: %s for %s", ErrUndeclaredSpecialField, f, intl.Country)
	}
	value := raw
	if decl.Mask != "" {
		if _, ok := masks[decl.Mask]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownMask, decl.Mask)
		}
		value = applyMask(decl.Mask, raw)
	}
	switch f {
	case models.FieldNationalID:
		intl.NationalID = value
	case models.FieldColorCode:
		intl.ColorCode = strings.ToUpper(strings.TrimSpace(value))
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, f)
	}
	m.selection = intl
	return nil
}

// State reports the mode of the request and, for international requests, the
// sub-states the selected country puts it in.
func (m *Model) State() State {
	s := State{Mode: m.selection.Mode(), Code: m.selection.Code()}
	if s.Mode == ModeDomestic {
		return s
	}
	profile := m.registry.ProfileOf(s.Code)
	if profile.HasSubJurisdictions {
		s.SubStates = append(s.SubStates, SubStateSubJurisdictions)
	}
	if m.catalog.IsRegionalBloc(s.Code) {
		s.SubStates = append(s.SubStates, SubStateRegionalBloc)
	}
	for _, sf := range m.catalog.SpecialFieldsOf(s.Code) {
		switch {
		case sf.Field == models.FieldColorCode:
			s.SubStates = append(s.SubStates, SubStateColorCoded)
		case sf.Field == models.FieldNationalID && sf.Required:
			s.SubStates = append(s.SubStates, SubStateNationalIDRequired)
		}
	}
	if len(s.SubStates) == 0 {
		s.SubStates = []SubState{SubStatePlain}
	}
	return s
}

func init() {
	for _, country := range catalog.Default().ListCountries() {
		for _, sf := range country.SpecialFields {
			if _, ok := masks[sf.Mask]; sf.Mask != "" && !ok {
				panic(fmt.Sprintf("form: country %s declares unknown mask %q", country.Key, sf.Mask))
			}
		}
	}
}
