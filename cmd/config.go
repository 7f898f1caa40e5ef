package cmd

import (
	"flag"
	"fmt"

	"github.com/go-ini/ini"
)

// Configure applies the configuration file to the global flags. It must be
// called after flag.Parse.
func Configure() error {
	return configure(flag.CommandLine, *configFile)
}

// configure sets the flags of fs that were not given on the command line
// from the INI file at path. A missing file is not an error.
//
// Keys of the default section are flag names. Keys of a section are
// prefixed by the section name, so that
//
//	[price]
//	fixed = 65000
//
// sets -price-fixed.
func configure(fs *flag.FlagSet, path string) error {
	if path == "" {
		return nil
	}
	cfg, err := ini.LooseLoad(path)
	if err != nil {
		return fmt.Errorf("invalid configuration file %q: %w", path, err)
	}

	explicit := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	for _, section := range cfg.Sections() {
		for _, key := range section.Keys() {
			name := key.Name()
			if section.Name() != ini.DefaultSection {
				name = section.Name() + "-" + name
			}
			if fs.Lookup(name) == nil {
				return fmt.Errorf("%s: unknown setting %q", path, name)
			}
			if explicit[name] {
				continue
			}
			if err := fs.Set(name, key.String()); err != nil {
				return fmt.Errorf("%s: invalid %s: %w", path, name, err)
			}
		}
	}
	return nil
}
