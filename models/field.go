package models

// FieldID names a single entry on the license request form. The values are the
// JSON keys used on the wire to the rendering service.
type FieldID string

// Personal, address, physical and license fields
const (
	FieldFirstName    FieldID = "firstName"
	FieldMiddleName   FieldID = "middleName"
	FieldLastName     FieldID = "lastName"
	FieldNameSuffix   FieldID = "nameSuffix"
	FieldDOB          FieldID = "dob"
	FieldGender       FieldID = "gender"
	FieldAddress      FieldID = "address"
	FieldAddressLine2 FieldID = "addressLine2"
	FieldCity         FieldID = "city"
	FieldZipCode      FieldID = "zipCode"
	FieldHeight       FieldID = "height"
	FieldWeight       FieldID = "weight"
	FieldEyeColor     FieldID = "eyeColor"
	FieldHairColor    FieldID = "hairColor"
	FieldLicenseClass FieldID = "licenseClass"
	FieldRestrictions FieldID = "restrictions"
	FieldEndorsements FieldID = "endorsements"
	FieldOrganDonor   FieldID = "organDonor"
	FieldVeteran      FieldID = "veteran"
	FieldPhoto        FieldID = "photoBase64"
)

// Jurisdiction selection fields
const (
	FieldState             FieldID = "state"
	FieldCountry           FieldID = "country"
	FieldSubJurisdiction   FieldID = "subJurisdiction"
	FieldLicenseCategories FieldID = "licenseCategories"
	FieldColorCode         FieldID = "colorCode"
	FieldNationalID        FieldID = "nationalId"
)

var knownFields = map[FieldID]bool{
	FieldFirstName: true, FieldMiddleName: true, FieldLastName: true, FieldNameSuffix: true,
	FieldDOB: true, FieldGender: true, FieldAddress: true, FieldAddressLine2: true,
	FieldCity: true, FieldZipCode: true, FieldHeight: true, FieldWeight: true,
	FieldEyeColor: true, FieldHairColor: true, FieldLicenseClass: true,
	FieldRestrictions: true, FieldEndorsements: true, FieldOrganDonor: true,
	FieldVeteran: true, FieldPhoto: true, FieldState: true, FieldCountry: true,
	FieldSubJurisdiction: true, FieldLicenseCategories: true, FieldColorCode: true,
	FieldNationalID: true,
}

// IsKnownField reports whether f names a form field
func IsKnownField(f FieldID) bool {
	return knownFields[f]
}
