package renderer

type Options struct {
	// Frame dims.
	FrameW uint32
	FrameH uint32

	// Window title.
	Title string

	// Additional backends that receive every published frame.
	Mirrors []Backend
}

// Validate checks that the frame dimensions are usable.
func (o Options) Validate() error {
	if o.FrameW == 0 || o.FrameH == 0 {
		return ErrInvalidViewport
	}
	return nil
}

// Viewport returns the frame dimensions as a controller viewport.
func (o Options) Viewport() [2]int {
	return [2]int{int(o.FrameW), int(o.FrameH)}
}
