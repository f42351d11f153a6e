// Package app wires the tracking pipeline: camera frames through hand
// detection and gesture classification out to the remote input
// transport, the event store and the live frame feed.
package app

import (
	"log"
	"sync"
	"sync/atomic"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/command"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/screen"
	"github.com/ayusman/mudra/internal/server"
	"github.com/ayusman/mudra/internal/store"
)

// Config holds configuration options for the application.
type Config struct {
	Store        *store.Store
	Camera       capture.Config
	Gesture      gesture.Config
	Detector     detector.Config
	MotionThresh float64
	// Mirror flips frames horizontally so the user sees a selfie view
	// and left/right hands match their own.
	Mirror bool

	// Optional sinks. A nil Controller disables remote input, a nil
	// Frames handler disables the live feed.
	Controller command.Controller
	Screens    *screen.Registry
	Frames     *server.FramesHandler

	// OnGesture is called whenever the headline gesture label changes,
	// for lightweight UI like the tray.
	OnGesture func(label string)
}

// DefaultConfig returns a mirrored pipeline on the default camera.
func DefaultConfig() Config {
	return Config{
		Camera:       capture.DefaultConfig(),
		Gesture:      gesture.DefaultConfig(),
		Detector:     detector.DefaultConfig(),
		MotionThresh: capture.DefaultMotionThreshold,
		Mirror:       true,
	}
}

// App is the main application that runs the tracking pipeline.
type App struct {
	config   Config
	camera   capture.Camera
	motion   *capture.MotionDetector
	detector detector.Detector
	engine   *gesture.Engine
	mapper   *command.Mapper
	recorder *eventRecorder

	enabled bool
	mu      sync.RWMutex
	stopCh  chan struct{}

	session    *store.Session
	frameCount atomic.Int64

	// Last label passed to OnGesture. Only the pipeline goroutine
	// touches it.
	lastGesture string
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	a := &App{
		config: config,
		camera: capture.NewCamera(config.Camera),
		motion: capture.NewMotionDetector(config.MotionThresh),
		engine: gesture.NewEngine(config.Gesture),
	}

	if config.Controller != nil {
		mapperCfg := command.Config{
			FrameWidth:  float64(config.Camera.Width),
			FrameHeight: float64(config.Camera.Height),
		}
		var locator command.Locator
		if config.Screens != nil {
			locator = config.Screens
		}
		a.mapper = command.NewMapper(mapperCfg, config.Controller, locator)
	}

	// Try MediaPipe first, fall back to mock detector
	if mp, err := detector.NewMediaPipeDetector(config.Detector); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe hand detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.detector = detector.NewMockDetector()
	}

	return a
}

// SetEnabled enables or disables gesture tracking.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether gesture tracking is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector sets the hand detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// Engine returns the gesture engine.
func (a *App) Engine() *gesture.Engine {
	return a.engine
}

// Session returns the store session of the current run, nil before
// Start or without a store.
func (a *App) Session() *store.Session {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.session
}

// Start begins the tracking pipeline.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return err
	}

	if a.config.Store != nil {
		session, err := a.config.Store.Sessions().Begin(a.config.Camera.DeviceID)
		if err != nil {
			a.camera.Close()
			return err
		}
		a.session = session
		a.recorder = newEventRecorder(a.config.Store.Events(), session.ID)
	}

	a.frameCount.Store(0)
	a.stopCh = make(chan struct{})
	go a.runPipeline()

	log.Println("Tracking pipeline started")
	return nil
}

// Stop halts the tracking pipeline and releases resources.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}

	if a.session != nil {
		if err := a.config.Store.Sessions().End(a.session.ID, a.frameCount.Load()); err != nil {
			log.Printf("Error ending session: %v", err)
		}
		a.session = nil
		a.recorder = nil
	}

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	a.motion.Close()

	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	log.Println("Tracking pipeline stopped")
}
