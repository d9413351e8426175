package config

import (
	"github.com/spf13/pflag"
)

const (
	flagConfig        = "config"
	flagEnv           = "env"
	flagVerbose       = "verbose"
	flagStrategy      = "strategy"
	flagMaxLineLength = "max-line-length"
	flagPort          = "port"
)

// Flags holds the raw command line values. Only flags the user actually
// set override the config file.
type Flags struct {
	path          string
	env           string
	verbose       bool
	strategy      string
	maxLineLength int
	port          int
}

func RegisterFlags(fs *pflag.FlagSet) *Flags {
	def := Default()
	f := &Flags{}
	fs.StringVar(&f.path, flagConfig, "", "path to YAML config file")
	fs.StringVar(&f.env, flagEnv, def.Env, "logger flavour: local or prod")
	fs.BoolVarP(&f.verbose, flagVerbose, "v", false, "trace every reaction step")
	fs.StringVar(&f.strategy, flagStrategy, def.Strategy, "reduction strategy: rescan or stack")
	fs.IntVar(&f.maxLineLength, flagMaxLineLength, def.MaxLineLength, "maximum input line length")
	return f
}

func (f *Flags) RegisterServeFlags(fs *pflag.FlagSet) {
	fs.IntVar(&f.port, flagPort, Default().HttpPort, "HTTP port to listen on")
}

// Resolve builds the final config: defaults, then the file, then flags.
func (f *Flags) Resolve(fs *pflag.FlagSet) (*Config, error) {
	cfg := Default()
	if f.path != "" {
		var err error
		if cfg, err = LoadConfig(f.path); err != nil {
			return nil, err
		}
	}

	changed := func(name string) bool {
		fl := fs.Lookup(name)
		return fl != nil && fl.Changed
	}
	if changed(flagEnv) {
		cfg.Env = f.env
	}
	if changed(flagVerbose) {
		cfg.Verbose = f.verbose
	}
	if changed(flagStrategy) {
		cfg.Strategy = f.strategy
	}
	if changed(flagMaxLineLength) {
		cfg.MaxLineLength = f.maxLineLength
	}
	if changed(flagPort) {
		cfg.HttpPort = f.port
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
