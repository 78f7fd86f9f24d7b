package stats

import "testing"

func TestParseClass(t *testing.T) {
	cases := map[string]Class{
		"QB":          QB,
		"qb":          QB,
		"RB":          RB,
		"FB":          RB,
		"WR":          WR,
		"TE":          TE,
		"DEF":         DEF,
		"DST":         DEF,
		"D/ST":        DEF,
		"CB":          DEF,
		"OLB":         DEF,
		"DL":          DEF,
		"SAF":         DEF,
		"S":           DEF,
		"DE":          DEF,
		"Quarterback": Unknown, // only code tokens classify, not full names
		"K":           Unknown,
		"":            Unknown,
	}
	for raw, want := range cases {
		if got := ParseClass(raw); got != want {
			t.Fatalf("ParseClass(%q) = %s, want %s", raw, got, want)
		}
	}
}

func TestParseClassFullNamesDegrade(t *testing.T) {
	// Spelled-out position names are not classified, even when a word
	// happens to contain a two-letter code ("QuarTErback", "Right Tackle").
	for _, raw := range []string{"Quarterback", "Running Back", "Tight End", "Right Tackle", "Linebacker"} {
		if got := ParseClass(raw); got != Unknown {
			t.Fatalf("ParseClass(%q) = %s, want UNK", raw, got)
		}
	}
}

func TestParseClassOffenseBeforeDefense(t *testing.T) {
	// Labels carrying both an offensive and a defensive code resolve by
	// rule order, offense first.
	if got := ParseClass("RB/DL"); got != RB {
		t.Fatalf("expected RB for hybrid label, got %s", got)
	}
	// "WIDE RECEIVER" contains a bare D but must not resolve defensive.
	if got := ParseClass("Wide Receiver"); got == DEF {
		t.Fatalf("long label spuriously matched defense")
	}
}
