package note

import (
	"encoding/base32"
	"path/filepath"
	"time"
)

// crockfordBase32 is a sortable base32 alphabet (digits before letters).
const crockfordBase32 = "0123456789abcdefghjkmnpqrstvwxyz"

//nolint:gochecknoglobals // package-level constant
var crockfordEncoding = base32.NewEncoding(crockfordBase32).WithPadding(base32.NoPadding)

const (
	timestampBytes  = 4
	byteMask        = 0xFF
	maxSuffixLength = 4
)

// GenerateID creates a lexicographically sortable note ID: a base32-encoded
// Unix-seconds timestamp (7 chars, sortable until 2106).
func GenerateID(now time.Time) string {
	sec := now.Unix()

	buf := make([]byte, timestampBytes)
	for i := timestampBytes - 1; i >= 0; i-- {
		buf[i] = byte(sec & byteMask)
		sec >>= 8
	}

	return crockfordEncoding.EncodeToString(buf)
}

// GenerateUniqueID generates an ID whose file does not exist in dir.
// On collision, appends letter suffixes (a, b, ..., z, za, zb, ...).
func (s *Store) GenerateUniqueID(dir string, now time.Time) (string, error) {
	base := GenerateID(now)

	exists, err := s.Exists(Path(dir, base))
	if err != nil {
		return "", err
	}

	if !exists {
		return base, nil
	}

	suffix := ""

	for {
		suffix = nextSuffix(suffix)
		candidate := base + suffix

		exists, err = s.Exists(Path(dir, candidate))
		if err != nil {
			return "", err
		}

		if !exists {
			return candidate, nil
		}

		if len(suffix) > maxSuffixLength {
			return "", ErrIDGenerationFailed
		}
	}
}

// nextSuffix increments a suffix like base-26: "" -> "a", "a" -> "b", ..., "z" -> "za".
func nextSuffix(suffix string) string {
	if suffix == "" {
		return "a"
	}

	runes := []rune(suffix)

	for idx := len(runes) - 1; idx >= 0; idx-- {
		if runes[idx] < 'z' {
			runes[idx]++

			return string(runes)
		}

		runes[idx] = 'a'
	}

	return suffix + "a"
}

// Path returns the full path of the note with the given ID inside dir.
func Path(dir, id string) string {
	return filepath.Join(dir, id+".md")
}
