package form

import "errors"

// Errors returned by Model operations. Each leaves the model unchanged.
var (
	ErrPhotoTooLarge          = errors.New("photo exceeds the 5 MiB limit")
	ErrPhotoWrongType         = errors.New("photo is not an image")
	ErrUnknownField           = errors.New("unknown or read-only field")
	ErrUnknownJurisdiction    = errors.New("unknown jurisdiction")
	ErrUnknownCountry         = errors.New("unknown country")
	ErrUnknownSubJurisdiction = errors.New("unknown sub-jurisdiction")
	ErrUnknownCategory        = errors.New("unknown license category")
	ErrUnknownMask            = errors.New("unknown input mask")
	ErrNotDomestic            = errors.New("request is not in domestic mode")
	ErrNotInternational       = errors.New("request is not in international mode")
	ErrNotRegionalBloc        = errors.New("country does not use license categories")
	ErrNoSubJurisdictions     = errors.New("country has no sub-jurisdictions")
	ErrUndeclaredSpecialField = errors.New("field is not declared by the selected country")
)
