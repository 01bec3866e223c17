// Package cli implements the httpval command: a cobra command tree over
// the header, media type and request-target parsers, configured by flags
// or HTTPVAL_* environment variables.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"braces.dev/errtrace"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/shapestone/shape-httpval/internal/log"
)

// EnvPrefix prefixes every environment variable read by the command.
const EnvPrefix = "HTTPVAL"

// ErrNotAcceptable is returned by negotiate when no offer is acceptable.
var ErrNotAcceptable = errors.New("not acceptable")

// Config holds the options shared by every subcommand.
type Config struct {
	LogLevel  slog.Level
	LogFormat string
	Pretty    bool
}

type app struct {
	v      *viper.Viper
	cfg    Config
	logger *slog.Logger
}

// NewCommand returns the root command. Each flag can also be set with
// an environment variable named after it, e.g. HTTPVAL_LOG_LEVEL.
func NewCommand(v *viper.Viper) (*cobra.Command, error) {
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(newEnvReplacer())

	a := &app{v: v, logger: log.Noop}
	root := &cobra.Command{
		Use:               "httpval",
		Short:             "Parse and inspect HTTP media types, Accept headers, request targets, header blocks and status codes",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	err := BindOptions(v, root.PersistentFlags(), []Opt{
		{
			DestP:   &a.cfg.LogLevel,
			Flag:    "log-level",
			Default: slog.LevelInfo,
			Desc:    "log level: debug, info, warn or error",
		},
		{
			DestP:   &a.cfg.LogFormat,
			Flag:    "log-format",
			Default: string(log.FormatConsole),
			Desc:    "log format: console, dev, json or none",
		},
		{
			DestP: &a.cfg.Pretty,
			Flag:  "pretty",
			Desc:  "indent JSON output",
		},
	})
	if err != nil {
		return nil, errtrace.Wrap(err)
	}

	builders := []func(*app) (*cobra.Command, error){
		newMediaTypeCommand,
		newAcceptCommand,
		newNegotiateCommand,
		newURICommand,
		newHeadersCommand,
		newStatusCommand,
	}
	for _, build := range builders {
		cmd, err := build(a)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		root.AddCommand(cmd)
	}
	return root, nil
}

// newEnvReplacer normalizes "-" to an underscore in env names.
func newEnvReplacer() *strings.Replacer {
	return strings.NewReplacer("-", "_")
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	format, err := log.ParseFormat(a.cfg.LogFormat)
	if err != nil {
		return errtrace.Wrap(err)
	}
	a.logger = log.New(cmd.ErrOrStderr(), log.Options{
		Format: format,
		Level:  a.cfg.LogLevel,
	})
	a.logger.Debug("configured",
		slog.String("command", cmd.Name()),
		slog.String("log_level", a.cfg.LogLevel.String()),
		slog.Bool("pretty", a.cfg.Pretty),
	)
	return nil
}

// print writes v as one JSON document per line.
func (a *app) print(cmd *cobra.Command, v interface{}) error {
	var (
		data []byte
		err  error
	)
	if a.cfg.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return errtrace.Wrap(err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return errtrace.Wrap(err)
}

// fail logs err with its trace and labels it with the input that caused it.
func (a *app) fail(input string, err error) error {
	a.logger.Debug("parse failed",
		slog.String("input", input),
		slog.Any("error", err),
		slog.String("trace", errtrace.FormatString(err)),
	)
	return fmt.Errorf("%q: %w", input, err)
}
