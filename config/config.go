package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/notargets/PlateFEM/fem"
	"github.com/notargets/PlateFEM/mesh"
	log "github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"
)

type Config struct {
	Plate     fem.PlateConfig
	FixedRule string
	Server    Server
	Log       Log
}

type Server struct {
	Addr            string
	ReadBufferSize  int
	WriteBufferSize int
}

type Log struct {
	Level  string
	Format string // text or json
}

// Default is the demo plate: 800×800 mm steel sheet under 200 units of
// pressure on a 15×15 mesh
func Default() Config {
	return Config{
		Plate: fem.PlateConfig{
			Width:         800,
			Height:        800,
			Thickness:     3,
			Pressure:      200,
			Young:         11,
			Poisson:       0.34,
			HElementCount: 15,
			VElementCount: 15,
		},
		FixedRule: mesh.DefaultFixedNodeRule.Name(),
		Server: Server{
			Addr:            ":9000",
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads an ini file. A missing file yields the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	file, err := ini.Load(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	return fromFile(file)
}

// Parse reads ini formatted configuration from memory
func Parse(source []byte) (Config, error) {
	file, err := ini.Load(source)
	if err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	return fromFile(file)
}

func fromFile(file *ini.File) (Config, error) {
	d := Default()
	plate := file.Section("plate")
	material := file.Section("material")
	msh := file.Section("mesh")
	srv := file.Section("server")
	lg := file.Section("log")

	cfg := Config{
		Plate: fem.PlateConfig{
			Width:         plate.Key("width").MustFloat64(d.Plate.Width),
			Height:        plate.Key("height").MustFloat64(d.Plate.Height),
			Thickness:     plate.Key("thickness").MustFloat64(d.Plate.Thickness),
			Pressure:      plate.Key("pressure").MustFloat64(d.Plate.Pressure),
			Young:         material.Key("young").MustFloat64(d.Plate.Young),
			Poisson:       material.Key("poisson").MustFloat64(d.Plate.Poisson),
			HElementCount: msh.Key("h_elements").MustInt(d.Plate.HElementCount),
			VElementCount: msh.Key("v_elements").MustInt(d.Plate.VElementCount),
		},
		FixedRule: msh.Key("fixed_rule").MustString(d.FixedRule),
		Server: Server{
			Addr:            srv.Key("addr").MustString(d.Server.Addr),
			ReadBufferSize:  srv.Key("read_buffer_size").MustInt(d.Server.ReadBufferSize),
			WriteBufferSize: srv.Key("write_buffer_size").MustInt(d.Server.WriteBufferSize),
		},
		Log: Log{
			Level:  lg.Key("level").MustString(d.Log.Level),
			Format: strings.ToLower(lg.Key("format").MustString(d.Log.Format)),
		},
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if err := c.Plate.Validate(); err != nil {
		return err
	}
	if _, err := mesh.RuleByName(c.FixedRule); err != nil {
		return fmt.Errorf("%w: %v", fem.ErrInvalidConfig, err)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %v", fem.ErrInvalidConfig, err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: unknown log format %q", fem.ErrInvalidConfig, c.Log.Format)
	}
	return nil
}

// Rule resolves the configured support layout
func (c Config) Rule() mesh.FixedNodeRule {
	rule, err := mesh.RuleByName(c.FixedRule)
	if err != nil {
		return mesh.DefaultFixedNodeRule
	}
	return rule
}

// Apply sets level and formatter on the logger
func (l Log) Apply(logger *log.Logger) error {
	level, err := log.ParseLevel(l.Level)
	if err != nil {
		return err
	}
	logger.SetLevel(level)
	if l.Format == "json" {
		logger.SetFormatter(&log.JSONFormatter{})
	} else {
		logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	return nil
}
