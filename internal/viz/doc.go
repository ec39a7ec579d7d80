// Package viz renders runs in the terminal.
//
//   - [EnergyPlot]: asciigraph line chart of a sampled observable
//   - [Live]: Bubble Tea view of a running simulation, with an xy projection
//     of the particles drawn on a Braille [Canvas]
//
// # Key Bindings
//
//	Q, Esc, Ctrl+C - stop the run and exit
package viz
