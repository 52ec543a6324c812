// Package viz is the live terminal view of the cursor controller.
//
// Mouse motion sets the controller target, a 60 Hz tick advances it with the
// measured frame time, and the smoothed position aims a spotlight over a
// character grid.
//
// # Key Bindings
//
//	s         - Cycle smoothing strategy
//	e         - Toggle effects
//	p         - Cycle idle-drift pattern
//	tab       - Select the next strategy parameter
//	up/down   - Tune the selected parameter
//	t         - Cycle color themes
//	r         - Reset the cursor
//	q         - Quit
package viz
