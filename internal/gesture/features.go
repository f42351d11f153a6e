package gesture

import (
	"math"

	"github.com/ayusman/mudra/internal/detector"
)

// HandFeatures is the derived feature bundle for one hand in one frame.
// All ratios are normalized by HandScale so they are independent of hand
// size and camera distance.
type HandFeatures struct {
	// HandScale is the knuckle-span (index MCP to pinky MCP) in
	// normalized space, floored above zero.
	HandScale float64

	PalmCenter3  detector.Point3D
	PalmCenterPx detector.Point2D

	// FlickAngleDeg is the image-plane angle of the wrist-to-middle-MCP
	// direction, used as a wrist-flick proxy for swipes.
	FlickAngleDeg float64

	// Skeleton points retained for orientation and coordinator math.
	Wrist3      detector.Point3D
	IndexMCP3   detector.Point3D
	PinkyMCP3   detector.Point3D
	MiddleMCP3  detector.Point3D
	IndexTipPx  detector.Point2D
	MiddleTipPx detector.Point2D
	IndexTip3   detector.Point3D
	ThumbTip3   detector.Point3D

	IndexExt  bool
	MiddleExt bool
	RingExt   bool
	PinkyExt  bool

	IndexCurled  bool
	MiddleCurled bool
	RingCurled   bool
	PinkyCurled  bool

	// ThumbVec is the unit vector from thumb MCP to thumb tip.
	ThumbVec    detector.Point3D
	ThumbStrong bool
}

// CurledCount returns how many of the four non-thumb fingers are curled.
func (f *HandFeatures) CurledCount() int {
	n := 0
	for _, c := range []bool{f.IndexCurled, f.MiddleCurled, f.RingCurled, f.PinkyCurled} {
		if c {
			n++
		}
	}
	return n
}

func isExtended(pipAngle, tipRatio float64) bool {
	return pipAngle >= ExtMinPIPAngleDeg && tipRatio >= ExtMinTipRatio
}

// isCurled intentionally uses OR where isExtended uses AND: a finger can
// be neither extended nor curled, but never both.
func isCurled(pipAngle, tipRatio float64) bool {
	return pipAngle <= CurlMaxPIPAngleDeg || tipRatio <= CurlMaxTipRatio
}

// ExtractFeatures derives the feature bundle from one observation.
// It never fails: every division is epsilon-guarded.
func ExtractFeatures(obs *detector.HandObservation) HandFeatures {
	n3 := &obs.Norm
	px := &obs.Pixels

	handScale := math.Max(Dist3(n3[detector.IndexMCP], n3[detector.PinkyMCP]), 1e-3)

	palmCenter3 := MeanPoint3(
		n3[detector.Wrist], n3[detector.IndexMCP], n3[detector.MiddleMCP], n3[detector.PinkyMCP],
	)
	palmCenterPx := MeanPoint2(
		px[detector.Wrist], px[detector.IndexMCP], px[detector.MiddleMCP], px[detector.PinkyMCP],
	)

	tipRatio := func(tipIdx int) float64 {
		return Dist3(n3[tipIdx], palmCenter3) / (handScale + 1e-9)
	}

	// Joint angles at each finger's middle (PIP) joint.
	idxAng := Angle3PtDeg(n3[detector.IndexMCP], n3[detector.IndexPIP], n3[detector.IndexDIP])
	midAng := Angle3PtDeg(n3[detector.MiddleMCP], n3[detector.MiddlePIP], n3[detector.MiddleDIP])
	rngAng := Angle3PtDeg(n3[detector.RingMCP], n3[detector.RingPIP], n3[detector.RingDIP])
	pkyAng := Angle3PtDeg(n3[detector.PinkyMCP], n3[detector.PinkyPIP], n3[detector.PinkyDIP])
	thAng := Angle3PtDeg(n3[detector.ThumbMCP], n3[detector.ThumbIP], n3[detector.ThumbTip])

	idxTipR := tipRatio(detector.IndexTip)
	midTipR := tipRatio(detector.MiddleTip)
	rngTipR := tipRatio(detector.RingTip)
	pkyTipR := tipRatio(detector.PinkyTip)
	thTipR := tipRatio(detector.ThumbTip)

	thumbVec := Normalize3(Sub3(n3[detector.ThumbTip], n3[detector.ThumbMCP]))
	thumbStrong := thAng >= ThumbMinIPAngleDeg && thTipR >= ThumbMinTipRatio

	wrist := px[detector.Wrist]
	midMCP := px[detector.MiddleMCP]
	flickAngle := math.Atan2(midMCP.Y-wrist.Y, midMCP.X-wrist.X) * 180.0 / math.Pi

	return HandFeatures{
		HandScale:     handScale,
		PalmCenter3:   palmCenter3,
		PalmCenterPx:  palmCenterPx,
		FlickAngleDeg: flickAngle,
		Wrist3:        n3[detector.Wrist],
		IndexMCP3:     n3[detector.IndexMCP],
		PinkyMCP3:     n3[detector.PinkyMCP],
		MiddleMCP3:    n3[detector.MiddleMCP],
		IndexTipPx:    px[detector.IndexTip],
		MiddleTipPx:   px[detector.MiddleTip],
		IndexTip3:     n3[detector.IndexTip],
		ThumbTip3:     n3[detector.ThumbTip],
		IndexExt:      isExtended(idxAng, idxTipR),
		MiddleExt:     isExtended(midAng, midTipR),
		RingExt:       isExtended(rngAng, rngTipR),
		PinkyExt:      isExtended(pkyAng, pkyTipR),
		IndexCurled:   isCurled(idxAng, idxTipR),
		MiddleCurled:  isCurled(midAng, midTipR),
		RingCurled:    isCurled(rngAng, rngTipR),
		PinkyCurled:   isCurled(pkyAng, pkyTipR),
		ThumbVec:      thumbVec,
		ThumbStrong:   thumbStrong,
	}
}

// HandOrientationAngles computes the hand's yaw, pitch and roll in
// degrees from its local frame: across runs from pinky to index knuckle,
// forward from wrist to middle knuckle.
func HandOrientationAngles(wrist, indexMCP, pinkyMCP, middleMCP detector.Point3D) (yaw, pitch, roll float64) {
	across := Normalize3(Sub3(indexMCP, pinkyMCP))
	forward := Normalize3(Sub3(middleMCP, wrist))

	yaw, pitch = YawPitchFromVec(forward.X, forward.Y, forward.Z)
	roll = WrapDeg(math.Atan2(across.Y, across.X) * 180.0 / math.Pi)
	return yaw, pitch, roll
}
