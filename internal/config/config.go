// Package config holds the editor kernel's configuration handle: margins,
// glyph substitutions, colors, tab width, and the CRLF line-ending flag,
// loadable from YAML (spec §3 "Configuration handle", §4.3 margin/glyph/
// color rendering rules).
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dledwards/ped/internal/editorerr"
	"github.com/dledwards/ped/internal/token"
)

// MarginCols is the fixed width of the line-number margin when enabled
// (spec §4.3 "Margin").
const MarginCols = 6

// Colors bundles the foreground/background pairs the renderer picks from
// (spec §4.3's rendering rules: text color, whitespace color, selection
// background, spotlight background).
type Colors struct {
	TextFg       uint8 `yaml:"text_fg"`
	TextBg       uint8 `yaml:"text_bg"`
	WhitespaceFg uint8 `yaml:"whitespace_fg"`
	SelectionBg  uint8 `yaml:"selection_bg"`
	SpotlightBg  uint8 `yaml:"spotlight_bg"`
}

// DefaultColors is used when a config omits the colors section.
var DefaultColors = Colors{
	TextFg:       7,
	TextBg:       0,
	WhitespaceFg: 8,
	SelectionBg:  24,
	SpotlightBg:  235,
}

// Glyphs holds the substitution characters for otherwise-invisible
// characters (spec §4.3: "\n to a configurable glyph ... \t and other ASCII
// control to configurable glyphs").
type Glyphs struct {
	EOLVisible bool `yaml:"eol_visible"`
	EOL        rune `yaml:"eol"`
	Tab        rune `yaml:"tab"`
	Control    rune `yaml:"control"`
}

// DefaultGlyphs matches common terminal editor convention: EOL hidden by
// default, tab rendered as '»', other control chars as '?'.
var DefaultGlyphs = Glyphs{
	EOLVisible: false,
	EOL:        '$',
	Tab:        '»',
	Control:    '?',
}

// Config is the editor kernel's full configuration handle.
type Config struct {
	ShowLineNumbers bool                    `yaml:"show_line_numbers"`
	TabWidth        int                     `yaml:"tab_width"`
	CRLF            bool                    `yaml:"crlf"`
	Colors          Colors                  `yaml:"colors"`
	Glyphs          Glyphs                  `yaml:"glyphs"`
	Syntaxes        map[string][]token.Rule `yaml:"-"`
}

// yamlConfig mirrors Config but with syntax rules expressed as plain
// strings, since token.Rule/token.Color aren't meant to carry yaml tags.
type yamlConfig struct {
	ShowLineNumbers bool   `yaml:"show_line_numbers"`
	TabWidth        int    `yaml:"tab_width"`
	CRLF            bool   `yaml:"crlf"`
	Colors          Colors `yaml:"colors"`
	Glyphs          Glyphs `yaml:"glyphs"`
}

// Default returns a Config with the built-in syntax rule sets (hand-written
// patterns colored from a chroma style, see syntax.go) and sensible
// rendering defaults.
func Default() *Config {
	return &Config{
		ShowLineNumbers: true,
		TabWidth:        4,
		CRLF:            false,
		Colors:          DefaultColors,
		Glyphs:          DefaultGlyphs,
		Syntaxes:        BuiltinSyntaxes(),
	}
}

// Load reads a YAML config file from path, overlaying it onto Default().
// tab_width and the eol/tab/control glyphs keep their default when absent
// or zero. A colors section that sets any color replaces the whole default
// palette, so colors it omits become 0. show_line_numbers, crlf and
// glyphs.eol_visible take the file's value and are false when absent. A
// file that cannot be read or parsed, including a malformed value, yields
// ErrIO; no per-entry fallback is made.
func Load(path string) (*Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &editorerr.ErrIO{Path: path, Cause: err}
	}
	var y yamlConfig
	if err := yaml.Unmarshal(raw, &y); err != nil {
		return nil, &editorerr.ErrIO{Path: path, Cause: err}
	}
	cfg.ShowLineNumbers = y.ShowLineNumbers
	if y.TabWidth > 0 {
		cfg.TabWidth = y.TabWidth
	}
	cfg.CRLF = y.CRLF
	if y.Colors != (Colors{}) {
		cfg.Colors = y.Colors
	}
	if y.Glyphs.EOL != 0 {
		cfg.Glyphs.EOL = y.Glyphs.EOL
	}
	if y.Glyphs.Tab != 0 {
		cfg.Glyphs.Tab = y.Glyphs.Tab
	}
	if y.Glyphs.Control != 0 {
		cfg.Glyphs.Control = y.Glyphs.Control
	}
	cfg.Glyphs.EOLVisible = y.Glyphs.EOLVisible
	return cfg, nil
}

// Syntax looks up a named rule set, returning ok=false if unknown so the
// caller can fall back to no highlighting rather than erroring (spec §7
// InvalidColor/InvalidRegex are load-time-only failures; an unknown syntax
// name at runtime is not one of those kinds and is handled by the caller).
func (c *Config) Syntax(name string) ([]token.Rule, bool) {
	rules, ok := c.Syntaxes[name]
	return rules, ok
}
