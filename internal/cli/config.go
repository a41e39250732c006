package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	fberrors "github.com/matzehuels/flowboard/pkg/errors"
	"github.com/matzehuels/flowboard/pkg/proptype"
)

// Config is the optional config.toml.
//
//	offset_x = 300
//	offset_y = 120
//	link_color = "#4caf50"
//	properties = "~/jina/properties.json"
//
//	[types]
//	gpu = "bool"
type Config struct {
	OffsetX    int               `toml:"offset_x"`
	OffsetY    int               `toml:"offset_y"`
	LinkColor  string            `toml:"link_color"`
	Properties string            `toml:"properties"`
	Types      map[string]string `toml:"types"`
}

// loadConfig reads path, or the default config file when path is empty.
// A missing default file yields an empty config; a missing explicit file
// is an error.
func loadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return &Config{}, nil
		}
		path = filepath.Join(dir, configFile)
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if explicit {
				return nil, fberrors.Wrap(fberrors.ErrCodeFileNotFound, err, "config %s", path)
			}
			return &Config{}, nil
		}
		return nil, fberrors.Wrap(fberrors.ErrCodeInvalidFormat, err, "config %s", path)
	}
	if cfg.OffsetX < 0 || cfg.OffsetY < 0 {
		return nil, fberrors.New(fberrors.ErrCodeInvalidInput, "config %s: offsets must not be negative", path)
	}
	return &cfg, nil
}

// Registry builds the property type registry: the properties file (or
// the embedded default) with the [types] table applied on top.
func (c *Config) Registry() (*proptype.Registry, error) {
	reg := proptype.Default()
	if c.Properties != "" {
		var err error
		if reg, err = proptype.LoadFile(expandHome(c.Properties)); err != nil {
			return nil, err
		}
	}
	if len(c.Types) == 0 {
		return reg, nil
	}

	overrides := make(map[string]proptype.Type, len(c.Types))
	for name, t := range c.Types {
		switch typ := proptype.Type(t); typ {
		case proptype.String, proptype.Int, proptype.Bool:
			overrides[name] = typ
		default:
			return nil, fberrors.New(fberrors.ErrCodeInvalidProperty,
				"config: property %q has unknown type %q", name, t)
		}
	}
	return reg.With(overrides), nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// String renders the config for debug logging.
func (c *Config) String() string {
	return fmt.Sprintf("offset_x=%d offset_y=%d link_color=%q properties=%q types=%d",
		c.OffsetX, c.OffsetY, c.LinkColor, c.Properties, len(c.Types))
}
