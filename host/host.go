// Package host drives a render.Renderer from golang.org/x/mobile/app
// events.  The renderer is created when the surface becomes visible and a
// surface size is known, each self-sent paint event draws one frame and
// schedules the next, and the renderer is released when the surface is
// no longer visible.
package host

import (
	"errors"
	"log"
	"reflect"

	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
	"golang.org/x/mobile/exp/app/debug"
	"golang.org/x/mobile/exp/gl/glutil"
	"golang.org/x/mobile/gl"

	"github.com/bmatsuo/mobile-gl-triangles/config"
	"github.com/bmatsuo/mobile-gl-triangles/glprog"
	"github.com/bmatsuo/mobile-gl-triangles/render"
)

// Startup failures detected by the host itself.
var (
	ErrContextUnavailable = errors.New("no gl context available from the draw context")
	ErrSurfaceUnavailable = errors.New("drawing surface has no area")
)

// Driver is the part of app.App used by the host.
type Driver interface {
	// Publish flips the back buffer to the screen.
	Publish()
	// Send queues an event for the app's event loop.
	Send(event interface{})
}

// State is the phase of the host's event handling.
type State int

// Host states.
const (
	Idle    State = iota // waiting for a visible context and surface size
	Running              // drawing frames
	Halted               // startup failed, events are ignored until stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Halted:
		return "halted"
	default:
		return "unknown"
	}
}

// Host handles app events for one window.  It is not safe for concurrent
// use; call Handle from the app's event loop.
type Host struct {
	driver   Driver
	opts     config.Options
	log      *log.Logger
	vertex   glprog.Source
	fragment glprog.Source

	state State
	err   error

	glctx  gl.Context
	sz     size.Event
	sized  bool
	r      *render.Renderer
	images *glutil.Images
	fps    *debug.FPS
}

// New returns a Host that compiles vertex and fragment when the surface
// becomes available.
func New(driver Driver, vertex, fragment glprog.Source, opts config.Options, logger *log.Logger) *Host {
	if logger == nil {
		logger = log.Default()
	}
	return &Host{
		driver:   driver,
		opts:     opts,
		log:      logger,
		vertex:   vertex,
		fragment: fragment,
	}
}

// State returns the current phase.
func (h *Host) State() State {
	return h.state
}

// Err returns the error that halted startup, if any.
func (h *Host) Err() error {
	return h.err
}

// Renderer returns the active renderer or nil.
func (h *Host) Renderer() *render.Renderer {
	return h.r
}

// Handle processes a single event, typically the result of app.Filter.
// Events of other types are ignored.
func (h *Host) Handle(e interface{}) {
	switch e := e.(type) {
	case lifecycle.Event:
		switch e.Crosses(lifecycle.StageVisible) {
		case lifecycle.CrossOn:
			h.onVisible(e.DrawContext)
		case lifecycle.CrossOff:
			h.onStop()
		}
	case size.Event:
		h.onSize(e)
	case paint.Event:
		if h.state != Running || e.External {
			// As we are actively painting as fast as we can, skip any
			// paint events sent by the system.
			return
		}
		h.onPaint()
		h.driver.Publish()
		// Drive the animation by preparing to paint the next frame after
		// this one is shown.
		h.driver.Send(paint.Event{})
	}
}

func (h *Host) onVisible(drawContext interface{}) {
	glctx, ok := drawContext.(gl.Context)
	if !ok || isNil(glctx) {
		h.halt(ErrContextUnavailable)
		return
	}
	h.glctx = glctx
	h.state = Idle
	h.err = nil
	h.start()
}

func (h *Host) onSize(sz size.Event) {
	if !h.sized {
		h.sz = sz
		h.sized = true
		h.start()
		return
	}
	if !h.opts.TrackResize {
		return
	}
	h.sz = sz
	if h.state == Halted && h.err == ErrSurfaceUnavailable {
		// the surface gained an area, retry startup
		h.state = Idle
		h.err = nil
		h.start()
		return
	}
	if h.r != nil && sz.WidthPx > 0 && sz.HeightPx > 0 {
		h.r.Viewport(sz.WidthPx, sz.HeightPx)
	}
}

// isNil reports whether glctx is nil or wraps a nil pointer.
func isNil(glctx gl.Context) bool {
	if glctx == nil {
		return true
	}
	v := reflect.ValueOf(glctx)
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}

// start creates the renderer once both a context and a surface size are
// known.
func (h *Host) start() {
	if h.state != Idle || h.glctx == nil || !h.sized {
		return
	}
	if h.sz.WidthPx <= 0 || h.sz.HeightPx <= 0 {
		h.halt(ErrSurfaceUnavailable)
		return
	}

	r, err := render.New(h.glctx, h.vertex, h.fragment, h.opts, h.log)
	if err != nil {
		h.state = Halted
		h.err = err
		return
	}
	r.Viewport(h.sz.WidthPx, h.sz.HeightPx)
	h.r = r
	if h.opts.ShowFPS {
		h.images = glutil.NewImages(h.glctx)
		h.fps = debug.NewFPS(h.images)
	}
	h.state = Running
	h.log.Printf("rendering on %dx%d px surface", h.sz.WidthPx, h.sz.HeightPx)
	h.driver.Send(paint.Event{})
}

func (h *Host) halt(err error) {
	h.state = Halted
	h.err = err
	h.log.Printf("startup halted: %v", err)
}

func (h *Host) onPaint() {
	if err := h.r.RenderFrame(); err != nil {
		h.log.Printf("frame %d: %v", h.r.Frames(), err)
	}
	if h.fps != nil {
		h.fps.Draw(h.sz)
	}
}

func (h *Host) onStop() {
	if h.fps != nil {
		h.fps.Release()
		h.images.Release()
		h.fps = nil
		h.images = nil
	}
	if h.r != nil {
		h.r.Release()
		h.r = nil
	}
	h.glctx = nil
	h.state = Idle
}
