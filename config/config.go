// Package config holds the engine's startup configuration. It is
// loaded once before the window opens and read-only afterwards.
package config

import (
	"io/ioutil"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  uint32 `yaml:"width"`
	Height uint32 `yaml:"height"`
}

type ViewportConfig struct {
	BorderPx    uint32     `yaml:"border_px"`
	BorderColor [3]float32 `yaml:"border_color"`
}

// SkyboxConfig names one cubemap set on disk: six files
// <dir>/<name>_<face>.<ext> for the ft/bk/up/dn/rt/lf faces.
type SkyboxConfig struct {
	Name string `yaml:"name"`
	Dir  string `yaml:"dir"`
	Ext  string `yaml:"ext"`
}

type AssetsConfig struct {
	DataDir  string         `yaml:"data_dir"`
	Workers  int            `yaml:"workers"`
	Skyboxes []SkyboxConfig `yaml:"skyboxes"`
}

type WebConfig struct {
	// Empty addr disables the debug server.
	Addr string `yaml:"addr"`
}

type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Viewport ViewportConfig `yaml:"viewport"`
	Assets   AssetsConfig   `yaml:"assets"`
	Web      WebConfig      `yaml:"web"`
}

func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:  "fray",
			Width:  1280,
			Height: 720,
		},
		Viewport: ViewportConfig{
			BorderPx:    1,
			BorderColor: [3]float32{0.96, 0.96, 0.96},
		},
		Assets: AssetsConfig{
			DataDir: "data",
			Workers: 4,
		},
		Web: WebConfig{
			Addr: "127.0.0.1:8000",
		},
	}
}

var current = Default()

func Get() Config { return current }

func Set(c Config) { current = c }

// Load parses a yaml config file over the defaults and installs the
// result as the current config. A missing file is not an error.
func Load(path string) error {
	c := Default()

	data, err := ioutil.ReadFile(path)
	if err != nil {
		Set(c)
		return nil
	}

	if err := yaml.Unmarshal(data, &c); err != nil {
		return errors.Wrapf(err, "Failed to parse config %q", path)
	}
	if err := c.Validate(); err != nil {
		return errors.Wrapf(err, "Invalid config %q", path)
	}

	Set(c)
	return nil
}

func (c *Config) Validate() error {
	if c.Window.Width == 0 || c.Window.Height == 0 {
		return errors.Errorf("Window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Assets.Workers <= 0 {
		return errors.Errorf("Worker count %d", c.Assets.Workers)
	}
	for _, sb := range c.Assets.Skyboxes {
		if sb.Name == "" || sb.Ext == "" {
			return errors.Errorf("Skybox entry %+v needs both name and ext", sb)
		}
	}
	return nil
}
