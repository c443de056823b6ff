package render

import "fmt"

// Still renders a single frame synchronously, without starting the render
// goroutine. The info box is drawn only if p.ShowInfo is set.
func Still(p Params, opts Options) (*Frame, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if p.Cubemap == nil {
		return nil, fmt.Errorf("%w: no cube map", ErrInvalidConfig)
	}
	r := New(opts)
	defer r.Close()
	r.apply(p, DirtyAll)
	return r.render()
}
