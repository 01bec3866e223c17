package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Opt is a single command-line option.
type Opt struct {
	DestP   interface{} // pointer to the destination
	Flag    string
	Default interface{}
	Desc    string
}

// BindOptions adds opts to fs and registers them with v, so each option
// can also be set from the environment. The destination is filled from
// the environment or the default right away; a flag given on the command
// line overrides it when fs is parsed.
func BindOptions(v *viper.Viper, fs *pflag.FlagSet, opts []Opt) error {
	for _, o := range opts {
		switch destP := o.DestP.(type) {
		case *string:
			var d string
			if o.Default != nil {
				d = o.Default.(string)
			}
			fs.StringVar(destP, o.Flag, d, o.Desc)
			mustBindPFlag(v, fs, o.Flag)
			*destP = v.GetString(o.Flag)
		case *bool:
			var d bool
			if o.Default != nil {
				d = o.Default.(bool)
			}
			fs.BoolVar(destP, o.Flag, d, o.Desc)
			mustBindPFlag(v, fs, o.Flag)
			*destP = v.GetBool(o.Flag)
		case *[]string:
			var d []string
			if o.Default != nil {
				d = o.Default.([]string)
			}
			fs.StringSliceVar(destP, o.Flag, d, o.Desc)
			mustBindPFlag(v, fs, o.Flag)
			*destP = v.GetStringSlice(o.Flag)
		case *slog.Level:
			var d slog.Level
			if o.Default != nil {
				d = o.Default.(slog.Level)
			}
			LevelVar(fs, destP, o.Flag, d, o.Desc)
			mustBindPFlag(v, fs, o.Flag)
			if s := v.GetString(o.Flag); s != "" {
				if err := fs.Set(o.Flag, s); err != nil {
					return fmt.Errorf("invalid value for %s: %w", o.Flag, err)
				}
			}
		default:
			panic(fmt.Errorf("unknown destination type %T", o.DestP))
		}
	}
	return nil
}

func mustBindPFlag(v *viper.Viper, fs *pflag.FlagSet, key string) {
	if err := v.BindPFlag(key, fs.Lookup(key)); err != nil {
		panic(err)
	}
}
