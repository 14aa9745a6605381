package form

import (
	"encoding/base64"
	"strings"

	"github.com/linesmerrill/dl-generator-api/models"
)

// Snapshot copies the request into the flat record sent for rendering. It does
// not validate; call Validate first.
func (m *Model) Snapshot() models.LicenseRequest {
	req := models.LicenseRequest{
		FirstName:    m.text[models.FieldFirstName],
		MiddleName:   m.text[models.FieldMiddleName],
		LastName:     m.text[models.FieldLastName],
		NameSuffix:   m.text[models.FieldNameSuffix],
		DOB:          m.text[models.FieldDOB],
		Gender:       m.text[models.FieldGender],
		Address:      m.text[models.FieldAddress],
		AddressLine2: m.text[models.FieldAddressLine2],
		City:         m.text[models.FieldCity],
		ZipCode:      m.text[models.FieldZipCode],
		Height:       m.text[models.FieldHeight],
		Weight:       m.text[models.FieldWeight],
		EyeColor:     m.text[models.FieldEyeColor],
		HairColor:    m.text[models.FieldHairColor],
		LicenseClass: m.text[models.FieldLicenseClass],
		Restrictions: m.text[models.FieldRestrictions],
		Endorsements: m.text[models.FieldEndorsements],
		OrganDonor:   m.organDonor,
		Veteran:      m.veteran,
	}
	if m.photo != nil {
		req.PhotoBase64 = base64.StdEncoding.EncodeToString(m.photo.Data)
	}

	switch s := m.selection.(type) {
	case Domestic:
		req.CountryFormat = models.DomesticCountryFormat
		req.State = s.Jurisdiction
	case International:
		req.IsInternational = true
		req.CountryFormat = s.Country
		req.SubJurisdiction = s.SubJurisdiction
		req.LicenseCategories = strings.Join(s.Categories, ",")
		req.ColorCode = s.ColorCode
		req.NationalID = s.NationalID
	}
	return req
}
