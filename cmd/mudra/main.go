package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/screen"
	"github.com/ayusman/mudra/internal/server"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/transport"
	"github.com/ayusman/mudra/internal/tray"
)

func main() {
	var (
		cameraID    = flag.Int("camera", 0, "camera device index")
		addr        = flag.String("addr", ":8081", "HTTP listen address for the API and live feed")
		targetIP    = flag.String("target", transport.DefaultTargetIP, "controller IP address")
		gesturePort = flag.Int("gesture-port", transport.DefaultGesturePort, "controller JSON gesture port")
		legacyPort  = flag.Int("legacy-port", transport.DefaultLegacyPort, "controller legacy text port")
		dbPath      = flag.String("db", "", "SQLite database path (default ~/.mudra/mudra.db)")
		noSend      = flag.Bool("no-send", false, "classify without sending commands to the controller")
	)
	flag.Parse()

	fmt.Println("Mudra - Gesture Remote Control")

	st, err := openStore(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	cfg := app.DefaultConfig()
	cfg.Store = st
	cfg.Camera.DeviceID = *cameraID
	cfg.Screens = screen.NewRegistry(screen.DefaultScaleMax)

	if !*noSend {
		sender, err := transport.NewSender(transport.Config{
			TargetIP:    *targetIP,
			GesturePort: *gesturePort,
			LegacyPort:  *legacyPort,
		})
		if err != nil {
			log.Fatalf("Failed to open controller socket: %v", err)
		}
		defer sender.Close()
		cfg.Controller = sender
	}

	frames := server.NewFramesHandler()
	cfg.Frames = frames

	t := tray.New()
	cfg.OnGesture = t.SetLastGesture

	a := app.New(cfg)
	if err := a.Start(); err != nil {
		log.Fatalf("Failed to start pipeline: %v", err)
	}
	a.SetEnabled(true)

	srv := server.New(server.Config{Store: st, Frames: frames})
	go func() {
		fmt.Printf("Starting server on %s\n", *addr)
		if err := srv.ListenAndServe(*addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	t.OnToggle(func(enabled bool) {
		a.SetEnabled(enabled)
		log.Printf("Tracking enabled: %v", enabled)
	})
	t.OnQuit(func() {
		a.Stop()
	})

	// Blocks until quit is clicked.
	t.Run()
}

// openStore opens the SQLite store at path, defaulting to
// ~/.mudra/mudra.db and creating the directory if needed.
func openStore(path string) (*store.Store, error) {
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbDir := filepath.Join(homeDir, ".mudra")
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		path = filepath.Join(dbDir, "mudra.db")
	}
	return store.New(path)
}
