package token

// Incremental insert/remove never re-run the regex (spec §4.2); they keep
// span boundaries correct but can leave a stale classification for
// characters within one rule-match's lookbehind/lookahead distance of an
// edit — e.g. typing a character that turns "foo" into "foobar" next to a
// `\bfoo\b` rule will not immediately un-color the new "foobar" run until
// the next full Tokenize call. This is the eventual-consistency contract
// spec §9 calls out explicitly, not a bug: Editor.Render runs a full
// Tokenize whenever the change clock has advanced (spec §4.3), which
// always converges to the same spans a from-scratch Tokenize would
// produce.
