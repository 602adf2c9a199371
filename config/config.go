// Package config reads the application's options from a YAML file bundled
// as an asset.  A missing file is not an error; the defaults are used.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"

	"golang.org/x/mobile/asset"
	"gopkg.in/yaml.v3"
)

// AssetName is the options file looked up in the assets directory.
const AssetName = "triangles.yml"

// maxSize bounds the options file read from assets.
const maxSize = 64 << 10

// Options controls rendering behavior.
type Options struct {
	// Validate checks the GL error state after every frame call.  When
	// false draw-time errors go unnoticed.
	Validate bool `yaml:"validate"`

	// UploadEveryFrame re-uploads the constant vertex data on each frame
	// instead of once at startup.
	UploadEveryFrame bool `yaml:"upload_every_frame"`

	// ReleaseShadersAfterLink deletes both shaders once the program is
	// linked.  By default they are kept for the life of the program.
	ReleaseShadersAfterLink bool `yaml:"release_shaders_after_link"`

	// TrackResize updates the viewport on every size event.  By default
	// the first surface size is used for the whole session.
	TrackResize bool `yaml:"track_resize"`

	// ShowFPS draws a frame rate overlay after each frame.
	ShowFPS bool `yaml:"show_fps"`

	// VertexShader and FragmentShader name asset files that replace the
	// built-in shader sources.
	VertexShader   string `yaml:"vertex_shader"`
	FragmentShader string `yaml:"fragment_shader"`
}

// Default returns the options used when no file is present.
func Default() Options {
	return Options{}
}

// Decode parses YAML options from r.  Fields absent from the document keep
// their default values; unknown fields are rejected.
func Decode(r io.Reader) (Options, error) {
	opts := Default()
	dec := yaml.NewDecoder(io.LimitReader(r, maxSize))
	dec.KnownFields(true)
	if err := dec.Decode(&opts); err != nil {
		if err == io.EOF {
			return opts, nil
		}
		return Default(), fmt.Errorf("config: %w", err)
	}
	return opts, nil
}

// LoadAsset loads options from the named asset.  If the asset does not
// exist the defaults are returned without error.
func LoadAsset(name string) (Options, error) {
	f, err := asset.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("config: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Load is LoadAsset(AssetName) that logs failures and falls back to the
// defaults.
func Load(logger *log.Logger) Options {
	opts, err := LoadAsset(AssetName)
	if err != nil {
		logger.Printf("using default options: %v", err)
	}
	return opts
}
