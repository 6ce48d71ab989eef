// Package interp provides the fractional-delay interpolators used when
// reading between the samples held in a ring buffer.
//
//   - [Linear2]:  2-point linear interpolation
//   - [Hermite4]: 4-point cubic Hermite (good default)
//
// [Mode] selects one of them at construction time of a delay line.
package interp
