package red

// Viewport is the window-space rectangle draws map onto.
type Viewport struct {
	X, Y int32
	W, H int32
}

// ViewportForWindow returns a viewport covering a w x h window.
func ViewportForWindow(w, h int32) Viewport {
	return Viewport{W: w, H: h}
}

// UpdateSize changes the size and keeps the origin.
func (v *Viewport) UpdateSize(w, h int32) {
	v.W, v.H = w, h
}

// SetUsed applies the viewport to the context.
func (v Viewport) SetUsed(g *GL) {
	g.Raw().Viewport(v.X, v.Y, v.W, v.H)
}

// Dimensions returns the width and height.
func (v Viewport) Dimensions() (w, h int32) { return v.W, v.H }
