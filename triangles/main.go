//go:build darwin || linux || windows

// Command triangles draws three colored triangles on a white background,
// redrawing them once per display refresh.
//
// On desktop run it directly:
//
//	$ go install github.com/bmatsuo/mobile-gl-triangles/triangles && triangles
//
// or build an Android APK with gomobile:
//
//	$ gomobile build github.com/bmatsuo/mobile-gl-triangles/triangles
//
// Options are read from assets/triangles.yml when that file exists.
package main

import (
	"log"

	"golang.org/x/mobile/app"

	"github.com/bmatsuo/mobile-gl-triangles/config"
	"github.com/bmatsuo/mobile-gl-triangles/host"
	"github.com/bmatsuo/mobile-gl-triangles/shaders"
)

// appDriver adapts app.App to host.Driver.
type appDriver struct {
	app.App
}

func (d appDriver) Publish() {
	d.App.Publish()
}

func main() {
	logger := log.Default()
	opts := config.Load(logger)

	vertex, fragment, err := shaders.Load(opts.VertexShader, opts.FragmentShader)
	if err != nil {
		logger.Printf("error loading shaders, using built-in sources: %v", err)
		vertex, fragment = shaders.Default()
	}

	app.Main(func(a app.App) {
		h := host.New(appDriver{a}, vertex, fragment, opts, logger)
		for e := range a.Events() {
			h.Handle(a.Filter(e))
		}
	})
}
