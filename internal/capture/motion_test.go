package capture

import (
	"image"
	"image/color"
	"testing"

	"gocv.io/x/gocv"
)

func solidFrame(t *testing.T, c color.RGBA) *gocv.Mat {
	t.Helper()

	mat := gocv.NewMatWithSizeFromScalar(
		gocv.NewScalar(float64(c.B), float64(c.G), float64(c.R), 0),
		120, 160, gocv.MatTypeCV8UC3,
	)
	t.Cleanup(func() { mat.Close() })
	return &mat
}

func TestMotionDetectorBaseline(t *testing.T) {
	md := NewMotionDetector(1.0)
	defer md.Close()

	frame := solidFrame(t, color.RGBA{R: 10, G: 10, B: 10})

	// The first frame only establishes the baseline.
	detected, percent := md.Detect(frame)
	if detected || percent != 0 {
		t.Errorf("baseline frame: detected=%v percent=%v, want false, 0", detected, percent)
	}

	// An identical second frame shows no motion.
	detected, percent = md.Detect(frame)
	if detected {
		t.Errorf("identical frame: detected with %.2f%% change", percent)
	}
}

func TestMotionDetectorDetectsChange(t *testing.T) {
	md := NewMotionDetector(1.0)
	defer md.Close()

	dark := solidFrame(t, color.RGBA{R: 10, G: 10, B: 10})
	bright := solidFrame(t, color.RGBA{R: 240, G: 240, B: 240})

	md.Detect(dark)
	detected, percent := md.Detect(bright)
	if !detected {
		t.Errorf("full-frame change not detected (%.2f%%)", percent)
	}
	if percent < 90 {
		t.Errorf("change percent = %.2f, want near 100", percent)
	}
}

func TestMotionDetectorPartialChange(t *testing.T) {
	md := NewMotionDetector(60.0)
	defer md.Close()

	dark := solidFrame(t, color.RGBA{R: 10, G: 10, B: 10})
	half := solidFrame(t, color.RGBA{R: 10, G: 10, B: 10})
	region := half.Region(image.Rect(0, 0, 160, 60))
	region.SetTo(gocv.NewScalar(240, 240, 240, 0))
	region.Close()

	md.Detect(dark)
	detected, percent := md.Detect(half)

	// Roughly half the pixels changed, below the 60% threshold.
	if detected {
		t.Errorf("half-frame change (%.2f%%) should stay under a 60%% threshold", percent)
	}
	if percent < 30 || percent > 70 {
		t.Errorf("change percent = %.2f, want around 50", percent)
	}
}

func TestMotionDetectorReset(t *testing.T) {
	md := NewMotionDetector(1.0)
	defer md.Close()

	dark := solidFrame(t, color.RGBA{R: 10, G: 10, B: 10})
	bright := solidFrame(t, color.RGBA{R: 240, G: 240, B: 240})

	md.Detect(dark)
	md.Reset()

	// After a reset the bright frame is a fresh baseline, not motion.
	detected, _ := md.Detect(bright)
	if detected {
		t.Error("first frame after reset should only set the baseline")
	}
}

func TestMotionDetectorEmptyFrame(t *testing.T) {
	md := NewMotionDetector(1.0)
	defer md.Close()

	empty := gocv.NewMat()
	defer empty.Close()

	detected, percent := md.Detect(&empty)
	if detected || percent != 0 {
		t.Errorf("empty frame: detected=%v percent=%v, want false, 0", detected, percent)
	}
	if detected, _ := md.Detect(nil); detected {
		t.Error("nil frame should never detect motion")
	}
}
