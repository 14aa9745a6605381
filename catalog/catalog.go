// Package catalog holds the static jurisdiction reference data: countries and
// their sub-jurisdictions, US jurisdictions, the EU category list and the
// region specific color and ID schemes. The data is embedded, checked once at
// process start and never mutated afterwards.
package catalog

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"

	"github.com/linesmerrill/dl-generator-api/models"
	"github.com/linesmerrill/dl-generator-api/refdata"
)

//go:embed data/catalog.yaml
var catalogYAML []byte

//go:embed data/catalog.schema.json
var catalogSchema []byte

// SpecialField is a country declared extra attribute. Mask names the input
// transform applied when the field is set, Required marks fields the country
// mandates regardless of its field profile.
type SpecialField struct {
	Field    models.FieldID `yaml:"field" json:"field"`
	Mask     string         `yaml:"mask" json:"mask,omitempty"`
	Required bool           `yaml:"required" json:"required"`
}

// Country is an issuing country selectable for international requests
type Country struct {
	Key                 string         `yaml:"key" json:"key"`
	Name                string         `yaml:"name" json:"name"`
	ISO                 string         `yaml:"iso" json:"iso"`
	DocumentName        string         `yaml:"documentName" json:"documentName,omitempty"`
	HasSubJurisdictions bool           `yaml:"hasSubJurisdictions" json:"hasSubJurisdictions"`
	SpecialFields       []SpecialField `yaml:"specialFields" json:"specialFields,omitempty"`
	Pattern             string         `yaml:"pattern" json:"-"`
}

// SubJurisdiction is a region within a country, e.g. AU_NSW
type SubJurisdiction struct {
	Code    string `yaml:"code" json:"code"`
	Short   string `yaml:"short" json:"short"`
	Name    string `yaml:"name" json:"name"`
	Pattern string `yaml:"pattern" json:"-"`
}

// USJurisdiction is a US state, DC or territory
type USJurisdiction struct {
	Code    string `yaml:"code" json:"code"`
	Name    string `yaml:"name" json:"name"`
	IIN     string `yaml:"iin" json:"aamvaCode"`
	Pattern string `yaml:"pattern" json:"-"`
}

// Code is a generic coded value with a display name
type Code struct {
	Code        string `yaml:"code" json:"code"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description,omitempty"`
}

type document struct {
	Countries        []Country                    `yaml:"countries"`
	RegionalBloc     []string                     `yaml:"regionalBloc"`
	SubJurisdictions map[string][]SubJurisdiction `yaml:"subJurisdictions"`
	USJurisdictions  []USJurisdiction             `yaml:"usJurisdictions"`
	EUCategories     []Code                       `yaml:"euCategories"`
	ColorCodes       []Code                       `yaml:"colorCodes"`
	EyeColors        []Code                       `yaml:"eyeColors"`
	HairColors       []Code                       `yaml:"hairColors"`
}

// Catalog is an immutable, indexed view over the reference data
type Catalog struct {
	doc       document
	countries map[string]int
	us        map[string]int
	bloc      map[string]bool
	subs      map[string]SubJurisdiction
	patterns  map[string]*regexp.Regexp
}

var std = mustLoad()

func mustLoad() *Catalog {
	c, err := Load(catalogYAML, catalogSchema)
	if err != nil {
		panic(fmt.Sprintf("catalog: %v", err))
	}
	return c
}

// Default returns the process wide catalog built from the embedded data
func Default() *Catalog {
	return std
}

// Load builds a catalog from a YAML document and its JSON schema. Besides the
// schema check it rejects duplicate codes, dangling bloc members, countries
// flagged with sub-jurisdictions that have none, and invalid number patterns.
func Load(doc, schema []byte) (*Catalog, error) {
	c := &Catalog{
		countries: make(map[string]int),
		us:        make(map[string]int),
		bloc:      make(map[string]bool),
		subs:      make(map[string]SubJurisdiction),
		patterns:  make(map[string]*regexp.Regexp),
	}
	if err := refdata.Decode("catalog", doc, schema, &c.doc); err != nil {
		return nil, err
	}

	for i, country := range c.doc.Countries {
		if _, ok := c.countries[country.Key]; ok {
			return nil, fmt.Errorf("duplicate country %q", country.Key)
		}
		c.countries[country.Key] = i
		if country.HasSubJurisdictions && len(c.doc.SubJurisdictions[country.ISO]) == 0 {
			return nil, fmt.Errorf("country %q declares sub-jurisdictions but none are listed", country.Key)
		}
		if err := c.compile(country.Key, country.Pattern); err != nil {
			return nil, err
		}
	}
	for _, key := range c.doc.RegionalBloc {
		if _, ok := c.countries[key]; !ok {
			return nil, fmt.Errorf("regional bloc member %q is not a country", key)
		}
		c.bloc[key] = true
	}
	for _, list := range c.doc.SubJurisdictions {
		for _, sub := range list {
			if _, ok := c.subs[sub.Code]; ok {
				return nil, fmt.Errorf("duplicate sub-jurisdiction %q", sub.Code)
			}
			c.subs[sub.Code] = sub
			if err := c.compile(sub.Code, sub.Pattern); err != nil {
				return nil, err
			}
		}
	}
	for i, j := range c.doc.USJurisdictions {
		if _, ok := c.us[j.Code]; ok {
			return nil, fmt.Errorf("duplicate US jurisdiction %q", j.Code)
		}
		c.us[j.Code] = i
		if err := c.compile("US_"+j.Code, j.Pattern); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Catalog) compile(key, pattern string) error {
	if pattern == "" {
		return nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("license number pattern for %q: %w", key, err)
	}
	c.patterns[key] = re
	return nil
}

func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func cloneCountry(country Country) Country {
	if country.SpecialFields != nil {
		country.SpecialFields = append([]SpecialField(nil), country.SpecialFields...)
	}
	return country
}

// ListCountries returns every country in catalog order
func (c *Catalog) ListCountries() []Country {
	out := make([]Country, 0, len(c.doc.Countries))
	for _, country := range c.doc.Countries {
		out = append(out, cloneCountry(country))
	}
	return out
}

// Country looks a country up by its key
func (c *Catalog) Country(key string) (Country, bool) {
	i, ok := c.countries[normalize(key)]
	if !ok {
		return Country{}, false
	}
	return cloneCountry(c.doc.Countries[i]), true
}

// SubJurisdictionsOf returns the sub-jurisdictions of a country in catalog
// order. Unknown countries and countries without sub-jurisdictions yield an
// empty slice.
func (c *Catalog) SubJurisdictionsOf(key string) []SubJurisdiction {
	country, ok := c.Country(key)
	if !ok || !country.HasSubJurisdictions {
		return []SubJurisdiction{}
	}
	return append([]SubJurisdiction{}, c.doc.SubJurisdictions[country.ISO]...)
}

// SubJurisdiction returns the sub-jurisdiction code of the given country
func (c *Catalog) SubJurisdiction(key, code string) (SubJurisdiction, bool) {
	code = normalize(code)
	for _, sub := range c.SubJurisdictionsOf(key) {
		if sub.Code == code {
			return sub, true
		}
	}
	return SubJurisdiction{}, false
}

// IsRegionalBloc reports whether the country licenses with the shared EU
// category scheme
func (c *Catalog) IsRegionalBloc(key string) bool {
	return c.bloc[normalize(key)]
}

// SpecialFieldsOf returns the special fields a country declares, or an empty
// slice
func (c *Catalog) SpecialFieldsOf(key string) []SpecialField {
	country, ok := c.Country(key)
	if !ok || country.SpecialFields == nil {
		return []SpecialField{}
	}
	return country.SpecialFields
}

// SpecialField returns a country's declaration for field
func (c *Catalog) SpecialField(key string, field models.FieldID) (SpecialField, bool) {
	for _, sf := range c.SpecialFieldsOf(key) {
		if sf.Field == field {
			return sf, true
		}
	}
	return SpecialField{}, false
}

// USJurisdictions returns the US states, DC and territories in catalog order
func (c *Catalog) USJurisdictions() []USJurisdiction {
	return append([]USJurisdiction{}, c.doc.USJurisdictions...)
}

// USJurisdiction looks a US jurisdiction up by its two letter code
func (c *Catalog) USJurisdiction(code string) (USJurisdiction, bool) {
	i, ok := c.us[normalize(code)]
	if !ok {
		return USJurisdiction{}, false
	}
	return c.doc.USJurisdictions[i], true
}

// EUCategories returns the EU license category list
func (c *Catalog) EUCategories() []Code {
	return append([]Code{}, c.doc.EUCategories...)
}

// IsEUCategory reports whether code is an EU license category
func (c *Catalog) IsEUCategory(code string) bool {
	return contains(c.doc.EUCategories, code)
}

// ColorCodes returns the color coded license scheme (GREEN, BLUE, GOLD)
func (c *Catalog) ColorCodes() []Code {
	return append([]Code{}, c.doc.ColorCodes...)
}

// IsColorCode reports whether code is a license color code
func (c *Catalog) IsColorCode(code string) bool {
	return contains(c.doc.ColorCodes, code)
}

// EyeColors returns the AAMVA eye color codes
func (c *Catalog) EyeColors() []Code {
	return append([]Code{}, c.doc.EyeColors...)
}

// IsEyeColor reports whether code is an AAMVA eye color code
func (c *Catalog) IsEyeColor(code string) bool {
	return contains(c.doc.EyeColors, code)
}

// HairColors returns the AAMVA hair color codes
func (c *Catalog) HairColors() []Code {
	return append([]Code{}, c.doc.HairColors...)
}

// IsHairColor reports whether code is an AAMVA hair color code
func (c *Catalog) IsHairColor(code string) bool {
	return contains(c.doc.HairColors, code)
}

func contains(codes []Code, code string) bool {
	for _, c := range codes {
		if c.Code == code {
			return true
		}
	}
	return false
}

// MatchesLicenseFormat checks a license number against the format of a US
// jurisdiction, a country key or a sub-jurisdiction code. known is false when
// code names none of those. Jurisdictions without a declared format accept any
// non-blank number.
func (c *Catalog) MatchesLicenseFormat(code, number string) (matched, known bool) {
	code = normalize(code)
	key := code
	if _, ok := c.us[code]; ok {
		key = "US_" + code
	} else if _, ok := c.countries[code]; !ok {
		if _, ok := c.subs[code]; !ok {
			return false, false
		}
	}
	if strings.TrimSpace(number) == "" {
		return false, true
	}
	re, ok := c.patterns[key]
	if !ok {
		return true, true
	}
	return re.MatchString(number), true
}
