package config

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/dledwards/ped/internal/token"
)

// category is one coarse lexical class a built-in syntax rule belongs to;
// chroma.Style colors are looked up per category rather than per chroma
// token subtype, mirroring the teacher's own token.Type.Category() switch
// in highlight_chroma.go (which picks one ANSI color per category) —
// generalized here to read the actual style entry's RGB color instead of
// a hardcoded escape string, so changing the active chroma style changes
// our derived palette too.
type category struct {
	chromaType chroma.TokenType
	patterns   []string
}

// languageCategories lists, for each built-in syntax name, the regex
// patterns belonging to each lexical category. Chroma's lexers are
// state-machine rule sets, not a single exposed regex per language, so
// these patterns are hand-authored per language the way a small editor's
// built-in syntax table would be; what IS pulled from chroma is the color
// each category renders with, via the active style below.
var languageCategories = map[string][]category{
	"go": {
		{chroma.Keyword, []string{
			`\b(func|return|if|else|for|range|switch|case|default|break|continue|package|import|var|const|type|struct|interface|map|chan|go|defer|select|fallthrough|goto)\b`,
		}},
		{chroma.NameBuiltin, []string{
			`\b(true|false|nil|iota|string|int|int32|int64|uint|uint8|uint32|uint64|float32|float64|bool|byte|rune|error|any)\b`,
		}},
		{chroma.LiteralString, []string{`"(\\.|[^"\\])*"`, "`[^`]*`"}},
		{chroma.LiteralNumber, []string{`\b[0-9]+(\.[0-9]+)?\b`}},
		{chroma.CommentSingle, []string{`//[^\n]*`}},
	},
	"rust": {
		{chroma.Keyword, []string{
			`\b(fn|let|mut|if|else|for|in|while|loop|match|struct|enum|impl|trait|pub|mod|use|return|break|continue|self|Self)\b`,
		}},
		{chroma.NameBuiltin, []string{
			`\b(true|false|None|Some|Ok|Err|String|str|i32|i64|u32|u64|f32|f64|bool|usize|isize)\b`,
		}},
		{chroma.LiteralString, []string{`"(\\.|[^"\\])*"`}},
		{chroma.LiteralNumber, []string{`\b[0-9]+(\.[0-9]+)?\b`}},
		{chroma.CommentSingle, []string{`//[^\n]*`}},
	},
	"python": {
		{chroma.Keyword, []string{
			`\b(def|return|if|elif|else|for|in|while|class|import|from|as|with|try|except|finally|raise|pass|break|continue|lambda|yield)\b`,
		}},
		{chroma.NameBuiltin, []string{
			`\b(True|False|None|self|int|str|float|bool|list|dict|set|tuple)\b`,
		}},
		{chroma.LiteralString, []string{`"(\\.|[^"\\])*"`, `'(\\.|[^'\\])*'`}},
		{chroma.LiteralNumber, []string{`\b[0-9]+(\.[0-9]+)?\b`}},
		{chroma.CommentSingle, []string{`#[^\n]*`}},
	},
	"plain": {},
}

// BuiltinSyntaxes derives the default name → []token.Rule table, using
// chroma's "monokai" style to assign an actual color to each category the
// way highlight_chroma.go maps chroma.TokenType to a displayed color.
func BuiltinSyntaxes() map[string][]token.Rule {
	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}
	out := make(map[string][]token.Rule, len(languageCategories))
	for name, cats := range languageCategories {
		var rules []token.Rule
		for _, cat := range cats {
			col := colorFromStyle(style, cat.chromaType)
			for _, pat := range cat.patterns {
				rules = append(rules, token.Rule{Pattern: pat, Color: col})
			}
		}
		out[name] = rules
	}
	return out
}

// colorFromStyle resolves chroma's RGB entry for tt to an 8-bit terminal
// color via the standard 6x6x6 color-cube approximation, falling back to
// white-on-default when the style has no explicit entry.
func colorFromStyle(style *chroma.Style, tt chroma.TokenType) token.Color {
	entry := style.Get(tt)
	if !entry.Colour.IsSet() {
		return token.Color{Fg: 7}
	}
	r, g, b := entry.Colour.Red(), entry.Colour.Green(), entry.Colour.Blue()
	return token.Color{Fg: rgbToAnsi256(r, g, b)}
}

// rgbToAnsi256 maps an 8-bit-per-channel RGB triple into the 6x6x6 color
// cube of the 256-color ANSI palette (indices 16-231).
func rgbToAnsi256(r, g, b uint8) uint8 {
	toCube := func(v uint8) uint8 {
		return uint8((int(v) * 5) / 255)
	}
	rc, gc, bc := toCube(r), toCube(g), toCube(b)
	return 16 + 36*rc + 6*gc + bc
}
