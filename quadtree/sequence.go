package quadtree

import "image"

// SequencePause is how many times the final frame of a sequence is repeated.
const SequencePause = 4

// Sequence renders the tree at depths 0 to depth-1, followed by SequencePause
// copies of the frame at depth. The repeated final frame is a single shared
// image, so callers must not modify frames in place.
//
// A sequence for depth D therefore has D+SequencePause frames.
func (t *Tree) Sequence(depth int, opts RenderOptions) ([]*image.NRGBA, error) {
	if err := t.checkDepth(depth); err != nil {
		return nil, err
	}

	frames := make([]*image.NRGBA, 0, depth+SequencePause)
	for d := 0; d < depth; d++ {
		img, err := t.Render(d, opts)
		if err != nil {
			return nil, err
		}
		frames = append(frames, img)
	}

	last, err := t.Render(depth, opts)
	if err != nil {
		return nil, err
	}
	for i := 0; i < SequencePause; i++ {
		frames = append(frames, last)
	}
	return frames, nil
}
