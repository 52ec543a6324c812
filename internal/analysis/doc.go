// Package analysis provides frequency analysis of recorded cursor motion.
//
// The main use is finding tremor: the residual between the smoothed position
// and its target carries the hand-shake oscillation, and its spectrum peaks
// at the shake frequency.
package analysis
