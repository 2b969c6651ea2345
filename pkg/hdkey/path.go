package hdkey

import (
	"fmt"
	"strconv"
	"strings"
)

// Path is a sequence of child numbers applied left to right from a root
// key.
type Path []ChildNumber

// ParsePath parses a path such as "m/44'/0'/0'/0/5". Hardened components
// may be marked with ', h or H. "m" alone is the empty path.
func ParsePath(s string) (Path, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if parts[0] != "m" && parts[0] != "M" {
		return nil, fmt.Errorf("%w: %q must start with m", ErrInvalidPath, s)
	}

	path := make(Path, 0, len(parts)-1)
	for _, part := range parts[1:] {
		c, err := parseComponent(part)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrInvalidPath, s, err)
		}
		path = append(path, c)
	}
	return path, nil
}

func parseComponent(part string) (ChildNumber, error) {
	hardened := false
	if n := len(part); n > 0 {
		switch part[n-1] {
		case '\'', 'h', 'H':
			hardened = true
			part = part[:n-1]
		}
	}
	if part == "" {
		return ChildNumber{}, fmt.Errorf("empty component")
	}
	v, err := strconv.ParseUint(part, 10, 32)
	if err != nil {
		return ChildNumber{}, fmt.Errorf("component %q: %w", part, err)
	}
	return NewChildNumber(uint32(v), hardened)
}

// PathFromUint32s builds a path from 32-bit wire-form child numbers.
func PathFromUint32s(values ...uint32) Path {
	path := make(Path, len(values))
	for i, v := range values {
		path[i] = ChildNumberFromUint32(v)
	}
	return path
}

// Child returns a new path with c appended. p is not modified.
func (p Path) Child(c ChildNumber) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, c)
}

// Uint32s returns the wire form of every component.
func (p Path) Uint32s() []uint32 {
	out := make([]uint32, len(p))
	for i, c := range p {
		out[i] = c.Uint32()
	}
	return out
}

// String formats p with apostrophes marking hardened components.
func (p Path) String() string {
	var b strings.Builder
	b.WriteString("m")
	for _, c := range p {
		b.WriteByte('/')
		b.WriteString(c.String())
	}
	return b.String()
}
