package cli

import (
	"log/slog"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelVar(t *testing.T) {
	tests := []struct {
		args []string
		want slog.Level
	}{
		{nil, slog.LevelWarn},
		{[]string{"--log-level=debug"}, slog.LevelDebug},
		{[]string{"--log-level", "ERROR"}, slog.LevelError},
		{[]string{"-l", "info"}, slog.LevelInfo},
	}
	for _, tt := range tests {
		fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
		var level slog.Level
		LevelVarP(fs, &level, "log-level", "l", slog.LevelWarn, "")
		require.NoError(t, fs.Parse(tt.args))
		assert.Equal(t, tt.want, level, "args %v", tt.args)
	}
}

func TestLevelVar_Invalid(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	var level slog.Level
	LevelVar(fs, &level, "log-level", slog.LevelInfo, "")
	err := fs.Parse([]string{"--log-level=loud"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "supported levels are debug, info, warn, error")

	f := fs.Lookup("log-level")
	assert.Equal(t, "Log-Level", f.Value.Type())
	assert.Equal(t, "info", f.Value.String())
}
