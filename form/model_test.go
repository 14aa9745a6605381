package form

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linesmerrill/dl-generator-api/catalog"
	"github.com/linesmerrill/dl-generator-api/models"
)

func international(t *testing.T, country string) *Model {
	t.Helper()
	m := New()
	m.SetJurisdictionMode(true)
	require.NoError(t, m.SelectCountry(country))
	return m
}

func TestNewDefaults(t *testing.T) {
	m := New()

	assert.Equal(t, Domestic{Jurisdiction: "TX"}, m.Selection())
	assert.Equal(t, "M", m.Field(models.FieldGender))
	assert.Equal(t, "BRO", m.Field(models.FieldEyeColor))
	assert.Equal(t, "BRO", m.Field(models.FieldHairColor))
	assert.Equal(t, "C", m.Field(models.FieldLicenseClass))
	_, ok := m.Photo()
	assert.False(t, ok)
}

func TestSetJurisdictionMode(t *testing.T) {
	m := New()

	m.SetJurisdictionMode(true)
	intl, ok := m.Selection().(International)
	require.True(t, ok)
	assert.Equal(t, "GERMANY", intl.Country)
	assert.Equal(t, []string{"B"}, intl.Categories)

	m.SetJurisdictionMode(true)
	assert.Equal(t, intl, m.Selection())

	m.SetJurisdictionMode(false)
	assert.Equal(t, Domestic{Jurisdiction: "TX"}, m.Selection())
}

func TestModeToggleLeavesNoInternationalResidue(t *testing.T) {
	keys := make([]string, 0)
	for _, c := range catalog.Default().ListCountries() {
		keys = append(keys, c.Key)
	}

	properties := gopter.NewProperties(gopter.DefaultTestParameters())
	properties.Property("international then domestic drops country data", prop.ForAll(
		func(key, id string) bool {
			m := New()
			m.SetJurisdictionMode(true)
			if err := m.SelectCountry(key); err != nil {
				return false
			}
			_ = m.SetSpecialField(models.FieldNationalID, id)
			m.SetJurisdictionMode(false)

			req := m.Snapshot()
			_, domestic := m.Selection().(Domestic)
			return domestic && !req.IsInternational && req.SubJurisdiction == "" &&
				req.LicenseCategories == "" && req.ColorCode == "" && req.NationalID == ""
		},
		gen.OneConstOf(toInterfaces(keys)...),
		gen.NumString(),
	))
	properties.TestingRun(t)
}

func toInterfaces(s []string) []interface{} {
	out := make([]interface{}, len(s))
	for i, v := range s {
		out[i] = v
	}
	return out
}

func TestSelectJurisdiction(t *testing.T) {
	m := New()

	require.NoError(t, m.SelectJurisdiction("ca"))
	assert.Equal(t, Domestic{Jurisdiction: "CA"}, m.Selection())

	assert.ErrorIs(t, m.SelectJurisdiction("ZZ"), ErrUnknownJurisdiction)
	assert.Equal(t, Domestic{Jurisdiction: "CA"}, m.Selection())

	m.SetJurisdictionMode(true)
	assert.ErrorIs(t, m.SelectJurisdiction("NY"), ErrNotDomestic)
}

func TestSelectCountryRequiresInternationalMode(t *testing.T) {
	m := New()
	assert.ErrorIs(t, m.SelectCountry("BRAZIL"), ErrNotInternational)
	assert.Equal(t, Domestic{Jurisdiction: "TX"}, m.Selection())
}

func TestSelectCountryRejectsUnknown(t *testing.T) {
	m := international(t, "UK")
	assert.ErrorIs(t, m.SelectCountry("ATLANTIS"), ErrUnknownCountry)
	assert.Equal(t, International{Country: "UK"}, m.Selection())
}

func TestSelectCountryAutoSelectsFirstSubJurisdiction(t *testing.T) {
	for _, c := range catalog.Default().ListCountries() {
		if !c.HasSubJurisdictions {
			continue
		}
		m := international(t, c.Key)
		intl := m.Selection().(International)
		assert.Equal(t, catalog.Default().SubJurisdictionsOf(c.Key)[0].Code, intl.SubJurisdiction, c.Key)
		_, flagged := m.Validate().Errors[models.FieldSubJurisdiction]
		assert.False(t, flagged, c.Key)
	}
}

func TestSelectCountrySeedsDefaults(t *testing.T) {
	assert.Equal(t, International{Country: "FRANCE", Categories: []string{"B"}}, international(t, "FRANCE").Selection())
	assert.Equal(t, International{Country: "JAPAN", ColorCode: "BLUE"}, international(t, "JAPAN").Selection())
	assert.Equal(t, International{Country: "UK"}, international(t, "UK").Selection())
}

func TestSelectCountryDropsPreviousCountryValues(t *testing.T) {
	m := international(t, "BRAZIL")
	require.NoError(t, m.SetSpecialField(models.FieldNationalID, "12345678901"))

	require.NoError(t, m.SelectCountry("INDIA"))
	assert.Equal(t, International{Country: "INDIA", SubJurisdiction: "IN_MH"}, m.Selection())
}

func TestSelectSubJurisdiction(t *testing.T) {
	m := international(t, "CANADA")

	require.NoError(t, m.SelectSubJurisdiction("ca_bc"))
	assert.Equal(t, "CA_BC", m.Selection().(International).SubJurisdiction)

	assert.ErrorIs(t, m.SelectSubJurisdiction("AU_NSW"), ErrUnknownSubJurisdiction)
	assert.Equal(t, "CA_BC", m.Selection().(International).SubJurisdiction)

	require.NoError(t, m.SelectCountry("UK"))
	assert.ErrorIs(t, m.SelectSubJurisdiction("CA_ON"), ErrNoSubJurisdictions)

	assert.ErrorIs(t, New().SelectSubJurisdiction("CA_ON"), ErrNotInternational)
}

func TestToggleCategory(t *testing.T) {
	m := international(t, "GERMANY")

	require.NoError(t, m.ToggleCategory("AM"))
	require.NoError(t, m.ToggleCategory("c1e"))
	assert.Equal(t, []string{"B", "AM", "C1E"}, m.Selection().(International).Categories)

	require.NoError(t, m.ToggleCategory("B"))
	assert.Equal(t, []string{"AM", "C1E"}, m.Selection().(International).Categories)
	assert.Equal(t, "AM,C1E", m.Snapshot().LicenseCategories)

	assert.ErrorIs(t, m.ToggleCategory("Q"), ErrUnknownCategory)
	assert.ErrorIs(t, international(t, "UK").ToggleCategory("B"), ErrNotRegionalBloc)
	assert.ErrorIs(t, international(t, "NORWAY").ToggleCategory("B"), ErrNotRegionalBloc)
	assert.Empty(t, international(t, "SWEDEN").Selection().(International).Categories)
	assert.ErrorIs(t, New().ToggleCategory("B"), ErrNotInternational)
}

func TestToggleCategoryTwiceRestoresList(t *testing.T) {
	codes := make([]interface{}, 0)
	for _, c := range catalog.Default().EUCategories() {
		codes = append(codes, c.Code)
	}

	properties := gopter.NewProperties(gopter.DefaultTestParameters())
	properties.Property("toggling a category twice is a no-op", prop.ForAll(
		func(prefix []string, code string) bool {
			m := international(t, "SPAIN")
			for _, p := range prefix {
				if err := m.ToggleCategory(p); err != nil {
					return false
				}
			}
			before := m.Snapshot().LicenseCategories
			if m.ToggleCategory(code) != nil || m.ToggleCategory(code) != nil {
				return false
			}
			return m.Snapshot().LicenseCategories == before
		},
		gen.SliceOf(gen.OneConstOf(codes...)),
		gen.OneConstOf(codes...),
	))
	properties.TestingRun(t)
}

func TestToggleCategoryKeepsFirstSeenOrder(t *testing.T) {
	m := international(t, "GERMANY")
	require.NoError(t, m.ToggleCategory("C"))
	require.NoError(t, m.ToggleCategory("CE"))
	require.Equal(t, "B,C,CE", m.Snapshot().LicenseCategories)

	require.NoError(t, m.ToggleCategory("B"))
	assert.Equal(t, "C,CE", m.Snapshot().LicenseCategories)
	require.NoError(t, m.ToggleCategory("B"))
	assert.Equal(t, "B,C,CE", m.Snapshot().LicenseCategories)

	require.NoError(t, m.SelectCountry("FRANCE"))
	require.NoError(t, m.ToggleCategory("A"))
	assert.Equal(t, []string{"B", "A"}, m.Selection().(International).Categories)
}

func TestSetSpecialField(t *testing.T) {
	m := international(t, "BRAZIL")
	require.NoError(t, m.SetSpecialField(models.FieldNationalID, "123abc456"))
	assert.Equal(t, "123.456", m.Selection().(International).NationalID)

	m = international(t, "INDIA")
	require.NoError(t, m.SetSpecialField(models.FieldNationalID, "123456789012"))
	assert.Equal(t, "1234 5678 9012", m.Selection().(International).NationalID)

	m = international(t, "JAPAN")
	require.NoError(t, m.SetSpecialField(models.FieldColorCode, " gold "))
	assert.Equal(t, "GOLD", m.Selection().(International).ColorCode)

	assert.ErrorIs(t, m.SetSpecialField(models.FieldNationalID, "1"), ErrUndeclaredSpecialField)
	assert.ErrorIs(t, New().SetSpecialField(models.FieldNationalID, "1"), ErrNotInternational)
}

func TestSetField(t *testing.T) {
	m := New()

	require.NoError(t, m.SetField(models.FieldFirstName, "Ada"))
	assert.Equal(t, "Ada", m.Field(models.FieldFirstName))

	assert.ErrorIs(t, m.SetField(models.FieldState, "CA"), ErrUnknownField)
	assert.ErrorIs(t, m.SetField(models.FieldID("shoeSize"), "9"), ErrUnknownField)

	require.NoError(t, m.SetFlag(models.FieldVeteran, true))
	assert.True(t, m.Snapshot().Veteran)
	assert.ErrorIs(t, m.SetFlag(models.FieldFirstName, true), ErrUnknownField)
}

func TestReset(t *testing.T) {
	m := international(t, "BRAZIL")
	require.NoError(t, m.SetField(models.FieldFirstName, "Ada"))
	require.NoError(t, m.AttachPhoto([]byte{1}, "image/png", 1))

	m.Reset()

	assert.Equal(t, New().Snapshot(), m.Snapshot())
}

func TestState(t *testing.T) {
	assert.Equal(t, State{Mode: ModeDomestic, Code: "TX"}, New().State())
	assert.Equal(t, []SubState{SubStatePlain}, international(t, "UK").State().SubStates)
	assert.Equal(t, []SubState{SubStateRegionalBloc}, international(t, "GERMANY").State().SubStates)
	assert.Equal(t, []SubState{SubStatePlain}, international(t, "NORWAY").State().SubStates)
	assert.Equal(t, []SubState{SubStateColorCoded}, international(t, "JAPAN").State().SubStates)
	assert.Equal(t, []SubState{SubStateSubJurisdictions}, international(t, "INDIA").State().SubStates)
	assert.Equal(t,
		[]SubState{SubStateSubJurisdictions, SubStateNationalIDRequired},
		international(t, "BRAZIL").State().SubStates)
}
