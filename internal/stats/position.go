package stats

import "strings"

// Class is the resolved position group a player prices under. Raw position
// labels vary wildly across providers ("QB", "Quarterback", "DL", "D/ST"),
// so labels are resolved once at ingestion and the Class travels with the
// event from then on.
type Class int

const (
	Unknown Class = iota
	QB
	RB
	WR
	TE
	DEF
)

// String returns the short label for the class.
func (c Class) String() string {
	switch c {
	case QB:
		return "QB"
	case RB:
		return "RB"
	case WR:
		return "WR"
	case TE:
		return "TE"
	case DEF:
		return "DEF"
	default:
		return "UNK"
	}
}

type positionRule struct {
	pattern string
	class   Class
}

// Matching is case-insensitive over whole tokens (labels split on space and
// slash), first rule wins, so the order below is part of the contract:
// offense before defense keeps labels like "RB/DL" from resolving defensive.
// Tokens that are themselves short codes ("OLB", "MLB") additionally match by
// containment, so the variant suffixes collapse onto the base code.
var positionRules = []positionRule{
	{"QB", QB},
	{"WR", WR},
	{"TE", TE},
	{"RB", RB},
	{"FB", RB},
	{"DEF", DEF},
	{"DST", DEF},
	{"SAF", DEF},
	{"CB", DEF},
	{"DL", DEF},
	{"LB", DEF},
}

// Short defensive codes ("D", "S", "DE") are too ambiguous even for token
// containment, so they only ever match a whole token.
var exactDefensive = map[string]struct{}{
	"D": {}, "S": {}, "DE": {}, "DT": {}, "DB": {}, "NT": {}, "EDGE": {},
}

// A token this short is a position code; longer tokens are words from a full
// position name ("Quarterback") and must match a pattern exactly or not at
// all. "QUARTERBACK" contains TE, "TACKLE" contains CB-adjacent fragments;
// containment is only safe inside codes.
const maxCodeLen = 3

// ParseClass resolves a raw position label to a Class. Empty, unrecognized,
// or spelled-out labels resolve to Unknown; callers fall back to generic
// weights and the catch-all score formula.
func ParseClass(raw string) Class {
	label := strings.ToUpper(strings.TrimSpace(raw))
	if label == "" {
		return Unknown
	}
	tokens := strings.FieldsFunc(label, func(r rune) bool {
		return r == ' ' || r == '/'
	})
	for _, rule := range positionRules {
		for _, tok := range tokens {
			if tok == rule.pattern {
				return rule.class
			}
			if len(tok) <= maxCodeLen && strings.Contains(tok, rule.pattern) {
				return rule.class
			}
		}
	}
	for _, tok := range tokens {
		if _, ok := exactDefensive[tok]; ok {
			return DEF
		}
	}
	return Unknown
}
