package form

// Mode is the top level jurisdiction mode of a request
type Mode string

// Modes
const (
	ModeDomestic      Mode = "domestic"
	ModeInternational Mode = "international"
)

// SubState describes which extra fields an international request shows and
// validates. A country can carry several of them at once.
type SubState string

// International sub-states
const (
	SubStatePlain              SubState = "Plain"
	SubStateSubJurisdictions   SubState = "WithSubJurisdictions"
	SubStateRegionalBloc       SubState = "RegionalBloc"
	SubStateColorCoded         SubState = "ColorCoded"
	SubStateNationalIDRequired SubState = "NationalIdRequired"
)

// Selection is the jurisdiction choice of a request. It is either Domestic or
// International, never both.
type Selection interface {
	Mode() Mode
	// Code is the jurisdiction code the field profile is resolved by
	Code() string
}

// Domestic selects a US jurisdiction
type Domestic struct {
	Jurisdiction string
}

// Mode implements Selection
func (Domestic) Mode() Mode { return ModeDomestic }

// Code implements Selection
func (d Domestic) Code() string { return d.Jurisdiction }

// International selects a country together with the values that only exist
// for some countries.
type International struct {
	Country         string
	SubJurisdiction string
	Categories      []string
	ColorCode       string
	NationalID      string
}

// Mode implements Selection
func (International) Mode() Mode { return ModeInternational }

// Code implements Selection
func (i International) Code() string { return i.Country }

func (i International) clone() International {
	if i.Categories != nil {
		i.Categories = append([]string{}, i.Categories...)
	}
	return i
}

// State is the observable mode of a request
type State struct {
	Mode      Mode       `json:"mode"`
	Code      string     `json:"code"`
	SubStates []SubState `json:"subStates,omitempty"`
}
