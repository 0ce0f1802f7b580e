// Package scale derives screen-space linear mappings from entity attributes.
//
// A [Step] selects one of three attribute pairs ((0,1), (2,3), (4,5)) that
// drive horizontal and vertical position. [Build] computes the extent of
// both attributes over a collection and returns a pair of [Linear] scales:
// x maps onto [left margin, width - right margin], y maps onto
// [height - bottom margin, top margin] so that larger values sit higher on
// screen.
//
// Scales are derived values. They are recomputed from scratch on every
// call and never cached.
//
// # Equal extents
//
// When every entity has the same value for an attribute the domain has zero
// width. Such a scale maps every input to the midpoint of its range, which
// keeps the mapping defined and places the figures in the middle of the
// plot area along that axis.
package scale
