// Package gravity implements direct-summation Newtonian gravity for a
// small fixed set of bodies.
//
//   - [Body]: named point mass with position, velocity and display color
//   - [System]: ordered body collection advanced by [System.Step]
//
// Forces are accumulated pairwise in O(N²), which is acceptable for the
// body counts this package is built for (N ≤ 5). Integration is
// semi-implicit Euler: velocity is updated from the net force first and
// the fresh velocity then advances the position. All net forces for a
// step are computed from the positional snapshot taken before any body
// moves, so the update is lock-step regardless of body order.
//
// # Energy Conservation
//
// Explicit Euler schemes drift; use [System.Energy] to monitor it:
//
//	sys := gravity.NewSystem(gravity.DefaultG, bodies)
//	e0 := sys.Energy()
package gravity
