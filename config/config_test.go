package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	if err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err != nil {
		t.Fatalf("missing file: %v", err)
	}
	c := Get()
	if c.Window.Width != 1280 || c.Assets.Workers != 4 {
		t.Errorf("defaults not installed: %+v", c)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fray.yaml")
	body := `
window:
  width: 640
  height: 480
assets:
  data_dir: testdata
  skyboxes:
    - {name: sunset, dir: sky, ext: png}
`
	if err := ioutil.WriteFile(path, []byte(body), os.FileMode(0644)); err != nil {
		t.Fatal(err)
	}
	if err := Load(path); err != nil {
		t.Fatalf("load: %v", err)
	}

	c := Get()
	if c.Window.Width != 640 || c.Window.Height != 480 {
		t.Errorf("window %+v", c.Window)
	}
	if c.Window.Title != "fray" {
		t.Errorf("default title lost: %q", c.Window.Title)
	}
	if c.Assets.DataDir != "testdata" || c.Assets.Workers != 4 {
		t.Errorf("assets %+v", c.Assets)
	}
	if len(c.Assets.Skyboxes) != 1 || c.Assets.Skyboxes[0].Name != "sunset" {
		t.Errorf("skyboxes %+v", c.Assets.Skyboxes)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fray.yaml")
	if err := ioutil.WriteFile(path, []byte("window:\n  width: 0\n"), os.FileMode(0644)); err != nil {
		t.Fatal(err)
	}
	if err := Load(path); err == nil {
		t.Errorf("zero window size accepted")
	}
}

func TestLoadRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fray.yaml")
	if err := ioutil.WriteFile(path, []byte("{unbalanced"), os.FileMode(0644)); err != nil {
		t.Fatal(err)
	}
	if err := Load(path); err == nil {
		t.Errorf("garbage yaml accepted")
	}
}
