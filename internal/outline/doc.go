// Package outline traces the boundary between solid and non-solid pixels of
// a raster and returns it as closed, axis-aligned polygons.
//
// What:
//
//   - Scan sweeps a solidity Grid once horizontally and once vertically and
//     collects maximal boundary segments into four direction buckets.
//   - Stitch joins those segments end-to-start into closed loops, choosing
//     the next direction from a fixed alternation table.
//   - Trace runs classification, scanning and stitching on a pixel source.
//   - Mapping / ToUnits move pixel-space polygons into sprite units
//     (scale by 1/pixels-per-unit, subtract the pivot offset).
//
// Coordinates:
//
//   - Grid space is y-up: cell (0,0) is the lower-left pixel of the traced
//     rectangle and grid line x=W is its right border.
//   - Outer boundaries are wound clockwise, holes counter-clockwise (solid is
//     always on the right-hand side of the direction of travel).
//   - Solid pixels are 4-connected. Two solid pixels that only share a corner
//     produce two polygons that touch at that corner.
//
// Complexity:
//
//   - Scan:   O(W×H) time, O(S) memory (S = number of segments).
//   - Stitch: O(S) expected time, start points are looked up in hash maps.
//
// Errors:
//
//   - ErrInvalidInput (ErrNilSource, ErrEmptyRect, ErrRectOutOfBounds):
//     caller mistakes, nothing is computed.
//   - ErrInconsistent (as *StitchError): a segment has no continuation. This
//     means Scan and Stitch disagree and is a bug, not a user error.
//   - ErrInvalidScale: pixels-per-unit must be positive.
package outline
