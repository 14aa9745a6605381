package registry

import "github.com/linesmerrill/dl-generator-api/models"

// Profile describes what a jurisdiction requires and allows. Empty code lists
// mean the jurisdiction does not constrain that list.
type Profile struct {
	Code                string           `json:"code"`
	RequiredFields      []models.FieldID `json:"required"`
	OptionalFields      []models.FieldID `json:"optional"`
	ValidClasses        []string         `json:"availableClasses"`
	ValidRestrictions   []string         `json:"availableRestrictions"`
	ValidEndorsements   []string         `json:"availableEndorsements"`
	HasSubJurisdictions bool             `json:"hasSubJurisdictions"`
	SpecialFields       []models.FieldID `json:"specialFields"`
	DocumentName        string           `json:"documentName,omitempty"`
}

// IsRequired reports whether f is in the required set
func (p Profile) IsRequired(f models.FieldID) bool {
	for _, r := range p.RequiredFields {
		if r == f {
			return true
		}
	}
	return false
}

// AllowsClass reports whether class is legal here
func (p Profile) AllowsClass(class string) bool {
	return allows(p.ValidClasses, class)
}

// AllowsRestriction reports whether restriction is legal here
func (p Profile) AllowsRestriction(restriction string) bool {
	return allows(p.ValidRestrictions, restriction)
}

// AllowsEndorsement reports whether endorsement is legal here
func (p Profile) AllowsEndorsement(endorsement string) bool {
	return allows(p.ValidEndorsements, endorsement)
}

func allows(set []string, code string) bool {
	if len(set) == 0 {
		return true
	}
	for _, c := range set {
		if c == code {
			return true
		}
	}
	return false
}
