package sdf

import (
	"strconv"
	"strings"
)

// Triple is an SDF `(min:typ:max)` delay value, with a missing slot
// recorded as a nil pointer. A bare number with no colons represents all
// three slots identically.
type Triple struct {
	Min, Typ, Max *float64
}

// HasAny reports whether any slot carries a value.
func (t Triple) HasAny() bool { return t.Min != nil || t.Typ != nil || t.Max != nil }

// Scale multiplies every present slot by f, used to apply the file's
// TIMESCALE to every value on read.
func (t Triple) Scale(f float64) Triple {
	scale := func(p *float64) *float64 {
		if p == nil {
			return nil
		}
		v := *p * f
		return &v
	}
	return Triple{Min: scale(t.Min), Typ: scale(t.Typ), Max: scale(t.Max)}
}

// parseTriple parses a group's keyword text as a triple: either
// "min:typ:max" (any slot may be empty) or a single bare number applied to
// all three slots.
func parseTriple(s string) (Triple, error) {
	if !strings.Contains(s, ":") {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Triple{}, err
		}
		return Triple{Min: &v, Typ: &v, Max: &v}, nil
	}
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return Triple{}, errMalformedTriple(s)
	}
	slot := func(p string) (*float64, error) {
		p = strings.TrimSpace(p)
		if p == "" {
			return nil, nil
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, err
		}
		return &v, nil
	}
	min, err := slot(parts[0])
	if err != nil {
		return Triple{}, err
	}
	typ, err := slot(parts[1])
	if err != nil {
		return Triple{}, err
	}
	max, err := slot(parts[2])
	if err != nil {
		return Triple{}, err
	}
	return Triple{Min: min, Typ: typ, Max: max}, nil
}

func errMalformedTriple(s string) error {
	return parseErrf("", 0, "malformed delay triple %q", s)
}

// isTripleGroup reports whether a nested group looks like a delay triple
// (a keyword of digits/sign/dot/colon characters) rather than a named
// construct like POSEDGE or COND.
func isTripleGroup(g *Group) bool {
	if g.Keyword == "" {
		return false
	}
	for _, r := range g.Keyword {
		switch {
		case r >= '0' && r <= '9':
		case r == '.' || r == '-' || r == '+' || r == ':' || r == 'e' || r == 'E':
		default:
			return false
		}
	}
	return true
}
