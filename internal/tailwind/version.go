package tailwind

import (
	"fmt"
	"strings"
)

// Spec is a parsed version request: either the latest published release
// or one explicit tag. Immutable once parsed.
type Spec struct {
	Tag string
}

// Latest reports whether the spec asks for the newest published release.
func (s Spec) Latest() bool { return s.Tag == "" }

func (s Spec) String() string {
	if s.Latest() {
		return "latest"
	}
	return s.Tag
}

// ParseSpec interprets a user-supplied version string. "latest", "v4",
// "4", and the empty string all select the newest release; anything else
// must look like a release tag (e.g. v4.1.6).
func ParseSpec(raw string) (Spec, error) {
	trimmed := strings.TrimSpace(raw)
	switch trimmed {
	case "", "latest", "v4", "4":
		return Spec{}, nil
	}
	if !validTag(trimmed) {
		return Spec{}, fmt.Errorf("invalid version %q: want latest or a release tag like v4.1.6", raw)
	}
	return Spec{Tag: trimmed}, nil
}

// validTag accepts an optional leading v, dotted numeric components, and
// an optional pre-release suffix after a dash.
func validTag(tag string) bool {
	rest := strings.TrimPrefix(tag, "v")
	if i := strings.IndexByte(rest, '-'); i >= 0 {
		if i == 0 || i == len(rest)-1 {
			return false
		}
		rest = rest[:i]
	}
	for _, part := range strings.Split(rest, ".") {
		if part == "" {
			return false
		}
		for _, r := range part {
			if r < '0' || r > '9' {
				return false
			}
		}
	}
	return true
}
