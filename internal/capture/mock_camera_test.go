package capture

import (
	"testing"

	"gocv.io/x/gocv"
)

func testFrames(t *testing.T, n int) []*gocv.Mat {
	t.Helper()

	frames := make([]*gocv.Mat, n)
	for i := range frames {
		mat := gocv.NewMatWithSize(DefaultHeight, DefaultWidth, gocv.MatTypeCV8UC3)
		frames[i] = &mat
	}
	t.Cleanup(func() {
		for _, f := range frames {
			f.Close()
		}
	})
	return frames
}

func TestMockCameraPlayback(t *testing.T) {
	cam := NewMockCamera(testFrames(t, 2), false)

	if _, err := cam.ReadFrame(); err == nil {
		t.Fatal("ReadFrame before Open should fail")
	}

	if err := cam.Open(); err != nil {
		t.Fatalf("open: %v", err)
	}
	defer cam.Close()

	for i := 0; i < 2; i++ {
		frame, err := cam.ReadFrame()
		if err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
		frame.Close()
	}

	// Without looping the sequence runs out.
	if _, err := cam.ReadFrame(); err == nil {
		t.Fatal("ReadFrame past the end should fail without loop")
	}
}

func TestMockCameraLoop(t *testing.T) {
	cam := NewMockCamera(testFrames(t, 1), true)

	if err := cam.Open(); err != nil {
		t.Fatalf("open: %v", err)
	}
	defer cam.Close()

	for i := 0; i < 5; i++ {
		frame, err := cam.ReadFrame()
		if err != nil {
			t.Fatalf("looped frame %d: %v", i, err)
		}
		frame.Close()
	}
}

func TestMockCameraReset(t *testing.T) {
	cam := NewMockCamera(testFrames(t, 1), false)

	if err := cam.Open(); err != nil {
		t.Fatalf("open: %v", err)
	}
	defer cam.Close()

	frame, err := cam.ReadFrame()
	if err != nil {
		t.Fatalf("first read: %v", err)
	}
	frame.Close()

	cam.Reset()

	frame, err = cam.ReadFrame()
	if err != nil {
		t.Fatalf("read after reset: %v", err)
	}
	frame.Close()
}
