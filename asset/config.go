package asset

import (
	"context"
	"fmt"
	"os"

	"github.com/achilleasa/kifs-explorer/log"
	"github.com/achilleasa/kifs-explorer/scene"
)

var logger = log.New("asset")

// LoadConfig reads a controller config from a local file or http(s) URL.
// Fields missing from the document keep their default values. The returned
// config has not been validated.
func LoadConfig(ctx context.Context, path string) (scene.Config, error) {
	res, err := NewResource(ctx, path)
	if err != nil {
		return scene.Config{}, err
	}
	defer res.Close()

	return ReadConfig(res)
}

// ReadConfig decodes a controller config from an open resource.
func ReadConfig(res *Resource) (scene.Config, error) {
	cfg, err := scene.DecodeConfig(res)
	if err != nil {
		return scene.Config{}, fmt.Errorf("%s (%s)", err, res.Path())
	}

	logger.Infof("loaded config from %s", res.Path())
	return cfg, nil
}

// SaveConfig writes cfg to a local file.
func SaveConfig(path string, cfg scene.Config) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err = scene.EncodeConfig(f, cfg); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
