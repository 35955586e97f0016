package placefile

import "strings"

// Kind is the container format of a place file as derived from its name.
type Kind int

const (
	KindUnknown Kind = iota
	KindXML
	KindBinary
)

const (
	ExtXML    = ".rbxlx"
	ExtBinary = ".rbxl"
)

// SupportedExtensions lists accepted suffixes in display order.
var SupportedExtensions = []string{ExtBinary, ExtXML}

func (k Kind) String() string {
	switch k {
	case KindXML:
		return "RBXLX"
	case KindBinary:
		return "RBXL"
	default:
		return "UNKNOWN"
	}
}

// Label is the human readable form used in upload reports.
func (k Kind) Label() string {
	switch k {
	case KindXML:
		return "RBXLX (XML)"
	case KindBinary:
		return "RBXL (Binary)"
	default:
		return "Unknown"
	}
}

// Classify maps a filename to its container kind by case-insensitive suffix.
// Anything that is not a known place suffix is KindUnknown.
func Classify(filename string) Kind {
	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, ExtXML):
		return KindXML
	case strings.HasSuffix(lower, ExtBinary):
		return KindBinary
	default:
		return KindUnknown
	}
}
