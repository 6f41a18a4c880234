package token

// Color is a foreground/background ANSI 8-bit color pair, following
// _examples/original_source/src/color.rs.
type Color struct {
	Fg uint8
	Bg uint8
}

// Zero is the default, unset color.
var Zero = Color{}

// Rule pairs a named capture pattern with the color assigned to text it
// matches (spec §4.2: "an ordered list of (named capture pattern, color)
// rules").
type Rule struct {
	Pattern string
	Color   Color
}
