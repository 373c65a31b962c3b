// Package element defines the parametric shape model and derives
// canonical geometry (center, bounds, radius, outline) from it.
// Elements are read-only inputs to toolpath generation; geometry is
// recomputed on every call and never cached.
package element
