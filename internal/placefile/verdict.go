package placefile

// Reasons reported by Validate. Markup and unexpected errors carry a detail
// suffix after the colon.
const (
	ReasonValid             = "valid"
	ReasonUnsupportedFormat = "unsupported format"
	ReasonEncoding          = "encoding error"
	ReasonInvalidMarkup     = "invalid markup"
	ReasonMissingRootTag    = "missing root tag"
	ReasonMissingWorkspace  = "missing Workspace service"
	ReasonNoServices        = "no services found"
	ReasonInvalidBinary     = "not a valid binary container"
	ReasonValidationError   = "validation error"
)

const (
	// DefaultDeclaredName is used when an XML place has no Workspace name.
	DefaultDeclaredName = "Unknown Game"
	// BinaryDeclaredName is used for every binary place.
	BinaryDeclaredName = "Binary Roblox Game"
	WorkspaceClass     = "Workspace"
)

const (
	rootTag           = "roblox"
	binarySignature   = "<roblox"
	binaryBrandToken  = "roblox"
	binarySniffLimit  = 1024
	itemTag           = "Item"
	propertiesTag     = "Properties"
	stringPropertyTag = "string"
	classAttr         = "class"
	nameAttr          = "name"
	namePropertyName  = "Name"
)

// Candidate is an upload handed to the validator. Size is the size the sender
// declared; it may differ from len(Data) when the transfer was cut short.
type Candidate struct {
	Filename string
	Size     int64
	Data     []byte
}

// Metadata is best-effort information extracted for display. Fields keep
// their defaults when extraction fails.
type Metadata struct {
	DeclaredName        string
	FileType            Kind
	SizeBytes           int64
	ServiceNames        []string
	HasWorkspaceService bool
}

// Verdict is the result of validating one candidate.
type Verdict struct {
	Valid    bool
	Reason   string
	Metadata Metadata
}

func reject(reason string, md Metadata) Verdict {
	return Verdict{Valid: false, Reason: reason, Metadata: md}
}

func accept(md Metadata) Verdict {
	return Verdict{Valid: true, Reason: ReasonValid, Metadata: md}
}
