// Package toolpath converts elements into machine move sequences and
// renders them as dialect-specific G-code text. Solids are sliced
// analytically by Z-level; composites are unified through the geometry
// kernel's boolean union with a per-child fallback.
//
// Generation is synchronous and pure over immutable inputs. Degenerate
// geometry never aborts a run: it is recovered locally as explanatory
// comments in the emitted text.
package toolpath
