// Package quadtree approximates an image by recursively splitting it into
// quadrants until every quadrant is flat enough, or a maximum depth is
// reached. Each terminal quadrant is painted with its average color,
// optionally passed through a tonal filter.
//
// A Tree is built once from a Source and is read-only afterwards. It can be
// rendered at any depth up to the deepest leaf, and rendered at every depth in
// turn to produce the frames of a refinement animation.
//
// The package does not decode or encode image files.
package quadtree
