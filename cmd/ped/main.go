// Command ped is the terminal entrypoint over the editor kernel: it parses
// flags, builds a Config and a Source, and drives the raw-mode control loop
// (spec §5, §6). Grounded on the teacher's cmd/demo/main.go and main.go for
// the overall "parse args, build the thing, run it" shape, restructured
// around cobra/pflag (pack: vibetunnel's CLI stack) instead of the
// teacher's raw os.Args dispatch.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dledwards/ped/internal/config"
	"github.com/dledwards/ped/internal/source"
)

var (
	flagSyntax   string
	flagCRLF     bool
	flagConfig   string
	flagTabSize  int
	flagShowEOL  bool
	flagNoLineNo bool
	flagVerbose  bool
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ped [flags] [file]",
		Short:         "a terminal text editor",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.MaximumNArgs(1),
		RunE:          runEditor,
	}
	flags := cmd.Flags()
	flags.StringVar(&flagSyntax, "syntax", "", "syntax highlighting name (default: guessed from file extension)")
	flags.BoolVar(&flagCRLF, "crlf", false, "write line endings as CRLF")
	flags.StringVar(&flagConfig, "config", "", "path to a YAML configuration file")
	flags.IntVar(&flagTabSize, "tab-size", 0, "override the configured tab width")
	flags.BoolVar(&flagShowEOL, "show-eol", false, "render end-of-line markers")
	flags.BoolVar(&flagNoLineNo, "no-line-numbers", false, "hide the line-number margin")
	flags.BoolVar(&flagVerbose, "verbose", false, "enable debug-level logging to ./ped.log")
	return cmd
}

func runEditor(cmd *cobra.Command, args []string) error {
	log, err := newLogger(flagVerbose)
	if err != nil {
		return err
	}
	defer log.Sync()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyFlagOverrides(cfg)

	src, syntaxName, err := resolveSource(args, flagSyntax)
	if err != nil {
		return err
	}

	app, err := NewApp(cfg, log, src, syntaxName)
	if err != nil {
		return err
	}
	return app.Run()
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	zcfg.OutputPaths = []string{"ped.log"}
	zcfg.ErrorOutputPaths = []string{"ped.log"}
	return zcfg.Build()
}

func loadConfig() (*config.Config, error) {
	if flagConfig == "" {
		return config.Default(), nil
	}
	return config.Load(flagConfig)
}

func applyFlagOverrides(cfg *config.Config) {
	if flagTabSize > 0 {
		cfg.TabWidth = flagTabSize
	}
	if flagCRLF {
		cfg.CRLF = true
	}
	if flagShowEOL {
		cfg.Glyphs.EOLVisible = true
	}
	if flagNoLineNo {
		cfg.ShowLineNumbers = false
	}
}

// resolveSource builds the buffer's backing Source and picks a syntax name:
// the --syntax flag wins outright, otherwise the file extension is guessed
// the way the teacher's highlight_chroma.go guesses a lexer from a
// filename.
func resolveSource(args []string, syntaxFlag string) (source.Source, string, error) {
	if len(args) == 0 {
		return source.NewEphemeralAuto(), orDefault(syntaxFlag, "plain"), nil
	}
	path := args[0]
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	syntax := syntaxFlag
	if syntax == "" {
		syntax = guessSyntax(path)
	}
	return source.NewFile(abs, nil), syntax, nil
}

func guessSyntax(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".go":
		return "go"
	case ".rs":
		return "rust"
	case ".py":
		return "python"
	default:
		return "plain"
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
