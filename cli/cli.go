package cli

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	flag "github.com/spf13/pflag"
	"github.com/ulmenhaus/tabula/osm"
)

const (
	ModeDaemon     = "daemon"
	ModeStandalone = "standalone"
)

// A Config holds everything needed to start tabula in one of its modes
type Config struct {
	Mode string `toml:"mode"`

	// daemon mode
	Addr      string `toml:"addr"`
	ExportDir string `toml:"exports"`

	// standalone mode
	Path  string `toml:"path"`
	Table string `toml:"table"`

	ConfigFile string `toml:"-"`
}

// flag names double as the keys of the config file
var fileKeys = map[string]func(c, from *Config){
	"mode":    func(c, from *Config) { c.Mode = from.Mode },
	"addr":    func(c, from *Config) { c.Addr = from.Addr },
	"exports": func(c, from *Config) { c.ExportDir = from.ExportDir },
	"path":    func(c, from *Config) { c.Path = from.Path },
	"table":   func(c, from *Config) { c.Table = from.Table },
}

func (c *Config) Validate() error {
	switch c.Mode {
	case ModeDaemon:
		if c.Addr == "" {
			return fmt.Errorf("Address must be provided for daemon mode")
		}
		if c.ExportDir == "" {
			return fmt.Errorf("Export directory must be provided for daemon mode")
		}
		if c.Path != "" {
			return fmt.Errorf("Path cannot be provided for daemon mode")
		}
	case ModeStandalone:
		if c.Path == "" {
			return fmt.Errorf("Path must be provided for standalone mode")
		}
		if _, err := osm.StoreForPath(c.Path); err != nil {
			return err
		}
	default:
		return fmt.Errorf("Unknown mode: %q", c.Mode)
	}
	return nil
}

func (c *Config) Register(f *flag.FlagSet) {
	f.StringVarP(&c.Mode, "mode", "m", ModeStandalone, "Mode of operation (daemon or standalone)")
	f.StringVarP(&c.Addr, "addr", "a", "localhost:9999", "Address to listen on in daemon mode")
	f.StringVarP(&c.ExportDir, "exports", "e", "_exports", "Directory that databases are exported to in daemon mode")
	f.StringVarP(&c.Path, "path", "p", "", "Path to the database document (.json or .json.sz) in standalone mode")
	f.StringVarP(&c.Table, "table", "t", "", "The table to start on in standalone mode")
	f.StringVarP(&c.ConfigFile, "config", "c", "", "TOML file with defaults for any of the above")
}

// LoadFile fills in the config from ConfigFile. Values of flags that were
// set explicitly on the command line take precedence over the file.
func (c *Config) LoadFile(f *flag.FlagSet) error {
	if c.ConfigFile == "" {
		return nil
	}
	fromFile := &Config{}
	md, err := toml.DecodeFile(c.ConfigFile, fromFile)
	if err != nil {
		return errors.Wrapf(err, "failed to read config %s", c.ConfigFile)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return errors.Errorf("unknown keys in config %s: %v", c.ConfigFile, undecoded)
	}
	for key, apply := range fileKeys {
		if md.IsDefined(key) && !f.Changed(key) {
			apply(c, fromFile)
		}
	}
	return nil
}

// Parse registers the config's flags on f, parses args, and applies the
// config file if one was given
func Parse(f *flag.FlagSet, args []string) (*Config, error) {
	c := &Config{}
	c.Register(f)
	if err := f.Parse(args); err != nil {
		return nil, err
	}
	if err := c.LoadFile(f); err != nil {
		return nil, err
	}
	return c, c.Validate()
}
