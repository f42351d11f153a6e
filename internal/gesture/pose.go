package gesture

// IsPointer reports whether the hand holds the pointer pose. With
// PointerRequireOnlyIndex the index must be the only extended finger;
// otherwise an extended index alone qualifies.
func IsPointer(f *HandFeatures, cfg Config) bool {
	if cfg.PointerRequireOnlyIndex {
		return f.IndexExt && !f.MiddleExt && !f.RingExt && !f.PinkyExt
	}
	return f.IndexExt
}

// IsTwoFinger reports whether the hand holds the deliberate two-finger
// pose: index and middle extended, ring and pinky curled.
func IsTwoFinger(f *HandFeatures) bool {
	return f.IndexExt && f.MiddleExt && f.RingCurled && f.PinkyCurled
}
