// Package planlog is the planner's leveled logger: a thin zap wrapper with
// fatih/color banners for the three verbosity tiers the CLI exposes.
package planlog

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Verbosity is one of the three tiers the CLI exposes via -v/--verbosity.
type Verbosity int

const (
	Quiet Verbosity = iota
	Normal
	Debug
)

func ParseVerbosity(s string) (Verbosity, error) {
	switch s {
	case "quiet":
		return Quiet, nil
	case "normal", "":
		return Normal, nil
	case "debug":
		return Debug, nil
	default:
		return Normal, fmt.Errorf("planlog: unknown verbosity %q (want quiet, normal, or debug)", s)
	}
}

// Logger wraps a zap.Logger with the planner's coloured banner helpers.
// Colour is disabled outright (rather than auto-detected) when the CLI's
// -c/--colour flag is off, matching fatih/color's own NoColor switch.
type Logger struct {
	zap     *zap.Logger
	colour  bool
	verbose Verbosity
}

func New(v Verbosity, colour bool) *Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.TimeKey = ""
	switch v {
	case Quiet:
		cfg.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	case Debug:
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	default:
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	z, err := cfg.Build()
	if err != nil {
		// zap's own config validation failing means a build-time bug, not a
		// runtime condition the caller can recover from.
		panic(fmt.Sprintf("planlog: building logger: %v", err))
	}
	if !colour {
		color.NoColor = true
	}
	return &Logger{zap: z, colour: colour, verbose: v}
}

func (l *Logger) Sync() { _ = l.zap.Sync() }

func (l *Logger) Debugf(format string, args ...interface{}) {
	l.zap.Sugar().Debugf(format, args...)
}

func (l *Logger) Infof(format string, args ...interface{}) {
	l.zap.Sugar().Infof(format, args...)
}

func (l *Logger) Warnf(format string, args ...interface{}) {
	l.zap.Sugar().Warnf(format, args...)
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.zap.Sugar().Errorf(format, args...)
}

// Banner prints a one-line, colour-coded search-progress line straight to
// stderr (bypassing zap entirely) unless verbosity is Quiet.
func (l *Logger) Banner(label string, expanded, generated int, heuristic float64) {
	if l.verbose == Quiet {
		return
	}
	var hStr string
	switch {
	case heuristic == 0:
		hStr = color.GreenString("%.0f", heuristic)
	case heuristic < 10:
		hStr = color.YellowString("%.1f", heuristic)
	default:
		hStr = color.RedString("%.1f", heuristic)
	}
	fmt.Fprintf(os.Stderr, "%s expanded=%s generated=%s h=%s\n",
		color.BlueString(label), color.CyanString("%d", expanded), color.CyanString("%d", generated), hStr)
}

// Table renders headers/rows as a table to stderr. Only printed at Debug
// verbosity: the plan summary this is used for is a diagnostic, not
// something a normal run needs.
func (l *Logger) Table(title string, headers []string, rows [][]string) {
	if l.verbose != Debug {
		return
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", color.BlueString(title))
	table := tablewriter.NewTable(&b)
	table.Header(headers)
	for _, row := range rows {
		table.Append(row)
	}
	table.Render()
	fmt.Fprint(os.Stderr, b.String())
}
