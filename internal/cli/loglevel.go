package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"
)

type levelValue slog.Level

func newLevelValue(val slog.Level, p *slog.Level) *levelValue {
	*p = val
	return (*levelValue)(p)
}

func (l *levelValue) String() string {
	return strings.ToLower(slog.Level(*l).String())
}

func (l *levelValue) Set(s string) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return fmt.Errorf("unknown log level; supported levels are debug, info, warn, error")
	}
	*l = levelValue(level)
	return nil
}

func (l *levelValue) Type() string {
	return "Log-Level"
}

// LevelVar defines a slog.Level flag with specified name, default value, and usage string.
// The argument p points to a slog.Level variable in which to store the value of the flag.
func LevelVar(fs *pflag.FlagSet, p *slog.Level, name string, value slog.Level, usage string) {
	LevelVarP(fs, p, name, "", value, usage)
}

// LevelVarP is like LevelVar, but accepts a shorthand letter that can be used after a single dash.
func LevelVarP(fs *pflag.FlagSet, p *slog.Level, name, shorthand string, value slog.Level, usage string) {
	fs.VarP(newLevelValue(value, p), name, shorthand, usage)
}
