package common

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// TPS is the fixed simulation rate; one Update call is one tick.
	TPS = 60
	// DeltaTime is the duration of one tick in seconds.
	DeltaTime = 1.0 / TPS

	// PixelsPerUnit converts world units (y-up) to screen pixels.
	PixelsPerUnit = 32.0
)
