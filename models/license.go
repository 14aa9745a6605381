package models

// DomesticCountryFormat is the countryFormat sent for domestic (US) requests.
const DomesticCountryFormat = "USA"

// LicenseRequest is the flat record handed to the rendering service. It is
// built as a snapshot of a form and never mutated afterwards.
type LicenseRequest struct {
	FirstName    string `json:"firstName"`
	MiddleName   string `json:"middleName,omitempty"`
	LastName     string `json:"lastName"`
	NameSuffix   string `json:"nameSuffix,omitempty"`
	DOB          string `json:"dob"`
	Gender       string `json:"gender"`
	Address      string `json:"address"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	City         string `json:"city"`
	ZipCode      string `json:"zipCode"`
	Height       string `json:"height,omitempty"`
	Weight       string `json:"weight,omitempty"`
	EyeColor     string `json:"eyeColor,omitempty"`
	HairColor    string `json:"hairColor,omitempty"`
	LicenseClass string `json:"licenseClass,omitempty"`
	Restrictions string `json:"restrictions,omitempty"`
	Endorsements string `json:"endorsements,omitempty"`
	OrganDonor   bool   `json:"organDonor"`
	Veteran      bool   `json:"veteran"`
	PhotoBase64  string `json:"photoBase64,omitempty"`

	IsInternational bool   `json:"isInternational"`
	CountryFormat   string `json:"countryFormat"`
	State           string `json:"state,omitempty"`

	SubJurisdiction   string `json:"subJurisdiction,omitempty"`
	LicenseCategories string `json:"licenseCategories,omitempty"`
	ColorCode         string `json:"colorCode,omitempty"`
	NationalID        string `json:"nationalId,omitempty"`
}

// LicenseData is the echo of the normalized request returned with the rendered
// card images.
type LicenseData struct {
	LicenseNumber         string `json:"licenseNumber"`
	FirstName             string `json:"firstName"`
	LastName              string `json:"lastName"`
	MiddleName            string `json:"middleName,omitempty"`
	DOB                   string `json:"dob"`
	State                 string `json:"state,omitempty"`
	Country               string `json:"country,omitempty"`
	Gender                string `json:"gender,omitempty"`
	LicenseClass          string `json:"licenseClass,omitempty"`
	IssueDate             string `json:"issueDate"`
	ExpirationDate        string `json:"expirationDate"`
	Restrictions          string `json:"restrictions,omitempty"`
	Endorsements          string `json:"endorsements,omitempty"`
	DocumentDiscriminator string `json:"documentDiscriminator,omitempty"`
}

// Jurisdiction returns the jurisdiction code the rendering service actually used.
func (d LicenseData) Jurisdiction() string {
	if d.Country != "" {
		return d.Country
	}
	return d.State
}

// ArtifactBundle holds the rendered front and back images (base64 PNG) and the
// echoed license data.
type ArtifactBundle struct {
	LicenseData    LicenseData `json:"licenseData"`
	FrontCardImage string      `json:"frontCardBase64"`
	BackCardImage  string      `json:"backCardBase64"`
	CardFormat     string      `json:"cardFormat,omitempty"`
}

// Availability is the result of a rendering service health probe.
type Availability struct {
	Available bool `json:"available"`
}
