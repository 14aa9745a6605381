package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linesmerrill/dl-generator-api/models"
)

func fillDefaults(t *testing.T, m *Model) {
	t.Helper()
	for f, v := range map[models.FieldID]string{
		models.FieldFirstName: "Ada",
		models.FieldLastName:  "Lovelace",
		models.FieldDOB:       "1990-12-10",
		models.FieldAddress:   "1 Main St",
		models.FieldCity:      "Austin",
		models.FieldZipCode:   "78701",
	} {
		require.NoError(t, m.SetField(f, v))
	}
}

func TestValidateDomesticComplete(t *testing.T) {
	m := New()
	fillDefaults(t, m)

	res := m.Validate()

	assert.True(t, res.Valid)
	assert.Empty(t, res.Errors)
}

func TestValidateReportsMissingRequiredFields(t *testing.T) {
	res := New().Validate()

	assert.False(t, res.Valid)
	for _, f := range []models.FieldID{
		models.FieldFirstName, models.FieldLastName, models.FieldDOB,
		models.FieldAddress, models.FieldCity, models.FieldZipCode,
	} {
		assert.Equal(t, ReasonRequired, res.Errors[f], f)
	}
	assert.NotContains(t, res.Errors, models.FieldGender)
}

func TestValidateBlankIsMissing(t *testing.T) {
	m := New()
	fillDefaults(t, m)
	require.NoError(t, m.SetField(models.FieldCity, "   "))

	assert.Equal(t, map[models.FieldID]Reason{models.FieldCity: ReasonRequired}, m.Validate().Errors)
}

func TestValidateUsesJurisdictionProfile(t *testing.T) {
	m := New()
	fillDefaults(t, m)
	require.NoError(t, m.SelectJurisdiction("CA"))

	res := m.Validate()

	assert.False(t, res.Valid)
	assert.Equal(t, ReasonRequired, res.Errors[models.FieldHeight])
	assert.NotContains(t, res.Errors, models.FieldEyeColor)
}

func TestValidateNationalIDRequired(t *testing.T) {
	m := international(t, "BRAZIL")
	fillDefaults(t, m)

	res := m.Validate()

	assert.False(t, res.Valid)
	assert.Equal(t, map[models.FieldID]Reason{models.FieldNationalID: ReasonSpecialFieldRequired}, res.Errors)

	require.NoError(t, m.SetSpecialField(models.FieldNationalID, "123456"))
	assert.Equal(t, ReasonMalformed, m.Validate().Errors[models.FieldNationalID])

	require.NoError(t, m.SetSpecialField(models.FieldNationalID, "12345678901"))
	assert.True(t, m.Validate().Valid)
}

func TestValidateOptionalNationalID(t *testing.T) {
	m := international(t, "INDIA")
	fillDefaults(t, m)
	assert.True(t, m.Validate().Valid)

	require.NoError(t, m.SetSpecialField(models.FieldNationalID, "1234"))
	assert.Equal(t, ReasonMalformed, m.Validate().Errors[models.FieldNationalID])
}

func TestValidateSubJurisdictionRequired(t *testing.T) {
	m := international(t, "MEXICO")
	fillDefaults(t, m)
	intl := m.selection.(International)
	intl.SubJurisdiction = ""
	m.selection = intl

	assert.Equal(t, ReasonSubJurisdictionRequired, m.Validate().Errors[models.FieldSubJurisdiction])
}

func TestValidateColorCode(t *testing.T) {
	m := international(t, "JAPAN")
	fillDefaults(t, m)
	assert.True(t, m.Validate().Valid)

	require.NoError(t, m.SetSpecialField(models.FieldColorCode, ""))
	assert.True(t, m.Validate().Valid)

	require.NoError(t, m.SetSpecialField(models.FieldColorCode, "PURPLE"))
	assert.Equal(t, ReasonMalformed, m.Validate().Errors[models.FieldColorCode])
}

func TestValidateEmptyCategorySetIsAllowed(t *testing.T) {
	m := international(t, "ITALY")
	fillDefaults(t, m)
	require.NoError(t, m.ToggleCategory("B"))

	assert.True(t, m.Validate().Valid)
	assert.Empty(t, m.Snapshot().LicenseCategories)
}

func TestValidateShape(t *testing.T) {
	tests := []struct {
		name   string
		field  models.FieldID
		value  string
		reason Reason
	}{
		{"dob layout", models.FieldDOB, "12/10/1990", ReasonMalformed},
		{"dob impossible date", models.FieldDOB, "1990-02-30", ReasonMalformed},
		{"gender", models.FieldGender, "X", ReasonMalformed},
		{"eye color", models.FieldEyeColor, "RED", ReasonMalformed},
		{"hair color", models.FieldHairColor, "PNK", ReasonMalformed},
		{"height", models.FieldHeight, "5'11", ReasonMalformed},
		{"weight", models.FieldWeight, "180lbs", ReasonMalformed},
		{"class", models.FieldLicenseClass, "D", ReasonNotPermitted},
		{"restriction", models.FieldRestrictions, "A, Z", ReasonNotPermitted},
		{"endorsement", models.FieldEndorsements, "H,Q", ReasonNotPermitted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New()
			fillDefaults(t, m)
			require.NoError(t, m.SetField(tt.field, tt.value))

			res := m.Validate()

			assert.False(t, res.Valid)
			assert.Equal(t, map[models.FieldID]Reason{tt.field: tt.reason}, res.Errors)
		})
	}
}

func TestValidateAcceptsPermittedCodes(t *testing.T) {
	m := New()
	fillDefaults(t, m)
	require.NoError(t, m.SetField(models.FieldGender, "9"))
	require.NoError(t, m.SetField(models.FieldHeight, "511"))
	require.NoError(t, m.SetField(models.FieldWeight, "180"))
	require.NoError(t, m.SetField(models.FieldLicenseClass, "M"))
	require.NoError(t, m.SetField(models.FieldRestrictions, "A, B"))
	require.NoError(t, m.SetField(models.FieldEndorsements, "H,X"))

	assert.True(t, m.Validate().Valid)
}

func TestValidateIsPure(t *testing.T) {
	m := international(t, "BRAZIL")
	before := m.Snapshot()

	m.Validate()

	assert.Equal(t, before, m.Snapshot())
}
