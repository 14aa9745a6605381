// Package registry answers what a jurisdiction requires and allows: its
// required and optional fields and its legal class, restriction and
// endorsement codes. Jurisdictions without an explicit rule set fall back to
// the default profile.
package registry

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/linesmerrill/dl-generator-api/catalog"
	"github.com/linesmerrill/dl-generator-api/models"
	"github.com/linesmerrill/dl-generator-api/refdata"
)

// DefaultCode identifies the fallback profile
const DefaultCode = "default"

//go:embed data/profiles.yaml
var profilesYAML []byte

//go:embed data/profiles.schema.json
var profilesSchema []byte

type rules struct {
	Required     []models.FieldID `yaml:"required"`
	Optional     []models.FieldID `yaml:"optional"`
	Classes      []string         `yaml:"classes"`
	Restrictions []string         `yaml:"restrictions"`
	Endorsements []string         `yaml:"endorsements"`
}

// Registry maps jurisdiction codes to profiles. It is read only once built.
type Registry struct {
	rules   map[string]rules
	catalog *catalog.Catalog
}

var std = mustLoad()

func mustLoad() *Registry {
	r, err := Load(profilesYAML, profilesSchema, catalog.Default())
	if err != nil {
		panic(fmt.Sprintf("registry: %v", err))
	}
	return r
}

// Default returns the process wide registry built from the embedded rules
func Default() *Registry {
	return std
}

// Load builds a registry from a YAML rules document. Country metadata is
// taken from cat.
func Load(doc, schema []byte, cat *catalog.Catalog) (*Registry, error) {
	r := &Registry{catalog: cat}
	if err := refdata.Decode("profiles", doc, schema, &r.rules); err != nil {
		return nil, err
	}
	if _, ok := r.rules[DefaultCode]; !ok {
		return nil, fmt.Errorf("no %q profile", DefaultCode)
	}
	for code, rs := range r.rules {
		for _, f := range append(append([]models.FieldID{}, rs.Required...), rs.Optional...) {
			if !models.IsKnownField(f) {
				return nil, fmt.Errorf("profile %q names unknown field %q", code, f)
			}
		}
	}
	return r, nil
}

// ProfileOf returns the profile for code, never failing: codes without an
// explicit rule set get the default rules. When code is a catalog country its
// sub-jurisdiction flag, special fields and document name are overlaid.
// Codes are matched case-insensitively.
func (r *Registry) ProfileOf(code string) Profile {
	code = strings.ToUpper(strings.TrimSpace(code))
	rs, ok := r.rules[code]
	profileCode := code
	if !ok {
		rs = r.rules[DefaultCode]
		profileCode = DefaultCode
	}
	p := Profile{
		Code:              profileCode,
		RequiredFields:    append([]models.FieldID{}, rs.Required...),
		OptionalFields:    append([]models.FieldID{}, rs.Optional...),
		ValidClasses:      append([]string{}, rs.Classes...),
		ValidRestrictions: append([]string{}, rs.Restrictions...),
		ValidEndorsements: append([]string{}, rs.Endorsements...),
		SpecialFields:     []models.FieldID{},
	}
	if r.catalog == nil {
		return p
	}
	if country, ok := r.catalog.Country(code); ok && country.Key == code {
		p.Code = country.Key
		p.HasSubJurisdictions = country.HasSubJurisdictions
		p.DocumentName = country.DocumentName
		for _, sf := range country.SpecialFields {
			p.SpecialFields = append(p.SpecialFields, sf.Field)
		}
	}
	return p
}

// ProfileOf answers from the process wide registry
func ProfileOf(code string) Profile {
	return std.ProfileOf(code)
}

// DefaultProfile returns the fallback profile of the process wide registry
func DefaultProfile() Profile {
	return std.ProfileOf(DefaultCode)
}
