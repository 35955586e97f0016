package storage

import (
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	// MaxFilenameLength caps a sanitized filename, extension included.
	MaxFilenameLength = 100

	nameSeparator   = "_"
	timestampLayout = "20060102_150405"
	suffixLength    = 8
	maxIDLength     = 255
)

// unsafeSequences are replaced by "_" in order. "/" goes first so that
// "../" collapses predictably.
var unsafeSequences = []string{"/", `\`, "..", "<", ">", ":", `"`, "|", "?", "*"}

// Sanitize makes filename safe to use as a single path element: separators,
// parent references, quoting and glob characters become "_", and the result
// is capped at MaxFilenameLength bytes by trimming the stem.
func Sanitize(filename string) string {
	s := filename
	for _, seq := range unsafeSequences {
		s = strings.ReplaceAll(s, seq, "_")
	}
	if len(s) <= MaxFilenameLength {
		return s
	}

	ext := filepath.Ext(s)
	if len(ext) >= MaxFilenameLength {
		return truncateBytes(s, MaxFilenameLength)
	}
	stem := strings.TrimSuffix(s, ext)
	// a cut stem ending in "." would form ".." with the extension
	stem = strings.TrimRight(truncateBytes(stem, MaxFilenameLength-len(ext)), ".")
	return stem + ext
}

func truncateBytes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// Namer builds storage identifiers. The zero value is not usable; call
// NewNamer.
type Namer struct {
	now    func() time.Time
	suffix func() string
}

// NewNamer returns a Namer using wall-clock time and random UUID suffixes.
func NewNamer() *Namer {
	return &Namer{
		now:    time.Now,
		suffix: randomSuffix,
	}
}

func randomSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:suffixLength]
}

// NameFor returns owner_timestamp_suffix_filename. Two calls with the same
// inputs in the same second differ by the random suffix.
func (n *Namer) NameFor(ownerID, originalFilename string) string {
	return strings.Join([]string{
		Sanitize(ownerID),
		n.now().Format(timestampLayout),
		n.suffix(),
		Sanitize(originalFilename),
	}, nameSeparator)
}

var defaultNamer = NewNamer()

// NameFor builds an identifier with the default Namer.
func NameFor(ownerID, originalFilename string) string {
	return defaultNamer.NameFor(ownerID, originalFilename)
}

// ValidateID reports whether id can be used as a flat storage key: non-empty,
// not hidden, short enough for common filesystems, and free of separators,
// parent references and the other characters Sanitize removes.
func ValidateID(id string) bool {
	if id == "" || strings.HasPrefix(id, ".") || len(id) > maxIDLength {
		return false
	}
	for _, seq := range unsafeSequences {
		if strings.Contains(id, seq) {
			return false
		}
	}
	return !strings.ContainsRune(id, 0)
}
