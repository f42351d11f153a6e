package app

import (
	"log"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
)

// Pipeline timing constants.
const (
	// IdleTimeout is how long without motion before hand detection is
	// skipped. The engine keeps advancing on empty frames so latches
	// expire and releases go out.
	IdleTimeout = 2 * time.Second
)

// runPipeline is the main loop: read a frame, gate on motion, detect
// hands, classify, then fan the result out to the transport, the store
// and the live feed. The engine itself is single threaded; this
// goroutine is its only caller.
func (a *App) runPipeline() {
	interval := time.Second / time.Duration(a.config.Camera.FPS)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	activeMode := false
	lastMotionTime := time.Now()

	for {
		select {
		case <-a.stopCh:
			return
		case <-ticker.C:
			if !a.IsEnabled() {
				continue
			}

			frame, err := a.camera.ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			if a.config.Mirror {
				gocv.Flip(*frame, frame, 1)
			}

			motionDetected, _ := a.motion.Detect(frame)
			if motionDetected {
				lastMotionTime = time.Now()
				if !activeMode {
					activeMode = true
					log.Println("Switched to active mode")
				}
			} else if activeMode && time.Since(lastMotionTime) > IdleTimeout {
				activeMode = false
				log.Println("Switched to idle mode")
			}

			var hands []detector.HandObservation
			if activeMode {
				hands, err = a.Detector().Detect(frame)
				if err != nil {
					log.Printf("Error detecting hands: %v", err)
					hands = nil
				}
			}
			frame.Close()

			a.processFrame(time.Now(), hands)
		}
	}
}

// processFrame runs one classification step and distributes the result.
func (a *App) processFrame(now time.Time, hands []detector.HandObservation) {
	res := a.engine.ProcessFrame(now, hands)
	a.frameCount.Add(1)

	if a.recorder != nil {
		a.recorder.record(&res, now)
	}

	if a.mapper != nil {
		if err := a.mapper.Process(&res); err != nil {
			log.Printf("Error sending commands: %v", err)
		}
	}

	if a.config.Frames != nil {
		a.config.Frames.Publish(&res)
	}

	if a.config.OnGesture != nil {
		if label := headline(&res); label != a.lastGesture {
			a.lastGesture = label
			a.config.OnGesture(label)
		}
	}
}

// headline picks a single label summarizing the frame. Claps win, then
// the first hand doing anything of interest.
func headline(res *gesture.FrameResult) string {
	if res.Clap.Fired {
		return "Clap"
	}
	for i := range res.Hands {
		if d := res.Hands[i].Display; d != gesture.DisplayNeutral {
			return d
		}
	}
	return gesture.DisplayNeutral
}
