package form

import "strings"

// mask is an input transform for a national identifier: non-digits are
// dropped, the digits are capped and then grouped progressively as they are
// typed.
type mask struct {
	digits int
	format func(d string) string
}

var masks = map[string]mask{
	"cpf":     {digits: 11, format: groupCPF},
	"aadhaar": {digits: 12, format: groupAadhaar},
}

// FormatCPF formats up to 11 digits as XXX.XXX.XXX-XX
func FormatCPF(raw string) string {
	return applyMask("cpf", raw)
}

// FormatAadhaar formats up to 12 digits as XXXX XXXX XXXX
func FormatAadhaar(raw string) string {
	return applyMask("aadhaar", raw)
}

// MaskDigits returns the digit cap of a mask, or 0 for unknown masks
func MaskDigits(id string) int {
	return masks[id].digits
}

func applyMask(id, raw string) string {
	m := masks[id]
	return m.format(onlyDigits(raw, m.digits))
}

func onlyDigits(s string, limit int) string {
	var b strings.Builder
	for _, r := range s {
		if b.Len() == limit {
			break
		}
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

func groupCPF(d string) string {
	switch {
	case len(d) > 9:
		return d[:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:]
	case len(d) > 6:
		return d[:3] + "." + d[3:6] + "." + d[6:]
	case len(d) > 3:
		return d[:3] + "." + d[3:]
	}
	return d
}

func groupAadhaar(d string) string {
	switch {
	case len(d) > 8:
		return d[:4] + " " + d[4:8] + " " + d[8:]
	case len(d) > 4:
		return d[:4] + " " + d[4:]
	}
	return d
}
