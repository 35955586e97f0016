package placefile

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// Validate decides whether data is a plausible place of the kind implied by
// filename and extracts display metadata. It is total: parser failures and
// panics are turned into a rejected Verdict.
func Validate(data []byte, filename string) (v Verdict) {
	kind := Classify(filename)
	md := Metadata{
		DeclaredName: DefaultDeclaredName,
		FileType:     kind,
		SizeBytes:    int64(len(data)),
	}

	defer func() {
		if r := recover(); r != nil {
			v = reject(fmt.Sprintf("%s: %v", ReasonValidationError, r), md)
		}
	}()

	switch kind {
	case KindXML:
		return validateXML(data, md)
	case KindBinary:
		return validateBinary(data, md)
	default:
		return reject(ReasonUnsupportedFormat, md)
	}
}

// Validate runs Validate on the candidate's content and name.
func (c Candidate) Validate() Verdict {
	return Validate(c.Data, c.Filename)
}

func validateXML(data []byte, md Metadata) Verdict {
	if !utf8.Valid(data) {
		return reject(ReasonEncoding, md)
	}

	root, err := parseTree(data)
	if err != nil {
		return reject(fmt.Sprintf("%s: %v", ReasonInvalidMarkup, err), md)
	}

	if !strings.EqualFold(root.tag, rootTag) {
		return reject(ReasonMissingRootTag, md)
	}

	services := make(map[string]struct{})
	root.walk(func(el *element) bool {
		if el.tag != itemTag {
			return true
		}
		if class := el.attr(classAttr); class != "" {
			services[class] = struct{}{}
		}
		return true
	})

	md.ServiceNames = sortedKeys(services)
	_, md.HasWorkspaceService = services[WorkspaceClass]

	if len(services) == 0 {
		return reject(ReasonNoServices, md)
	}
	if !md.HasWorkspaceService {
		return reject(ReasonMissingWorkspace, md)
	}

	if name := workspaceName(root); name != "" {
		md.DeclaredName = name
	}

	return accept(md)
}

// workspaceName returns the Name string property of the first Workspace item,
// looking only at its own Properties block. Nested items are not searched.
func workspaceName(root *element) string {
	var workspace *element
	root.walk(func(el *element) bool {
		if el.tag == itemTag && el.attr(classAttr) == WorkspaceClass {
			workspace = el
			return false
		}
		return true
	})
	if workspace == nil {
		return ""
	}

	for _, props := range workspace.children {
		if props.tag != propertiesTag {
			continue
		}
		for _, prop := range props.children {
			if prop.tag == stringPropertyTag && prop.attr(nameAttr) == namePropertyName {
				return strings.TrimSpace(prop.text.String())
			}
		}
	}
	return ""
}

func validateBinary(data []byte, md Metadata) Verdict {
	md.DeclaredName = BinaryDeclaredName

	header := data
	if len(header) > binarySniffLimit {
		header = header[:binarySniffLimit]
	}
	lower := asciiLower(header)

	if bytes.HasPrefix(lower, []byte(binarySignature)) || bytes.Contains(lower, []byte(binaryBrandToken)) {
		return accept(md)
	}
	return reject(ReasonInvalidBinary, md)
}

// asciiLower folds A-Z only. Binary headers are not UTF-8 and must keep
// their length.
func asciiLower(b []byte) []byte {
	out := make([]byte, len(b))
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		out[i] = c
	}
	return out
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
