package smoothing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/cursorsim/internal/motion"
)

func TestEasingFunctions(t *testing.T) {
	tests := []struct {
		name string
		t    float64
		want float64
	}{
		{"easeOutCubic", 0, 0},
		{"easeOutCubic", 0.5, 0.875},
		{"easeOutCubic", 1, 1},
		{"easeOutQuad", 0, 0},
		{"easeOutQuad", 0.5, 0.75},
		{"easeOutQuad", 1, 1},
		{"easeInOutCubic", 0, 0},
		{"easeInOutCubic", 0.25, 0.0625},
		{"easeInOutCubic", 0.5, 0.5},
		{"easeInOutCubic", 0.75, 0.9375},
		{"easeInOutCubic", 1, 1},
	}

	for _, tt := range tests {
		fn, err := EasingFunc(tt.name)
		require.NoError(t, err, tt.name)
		assert.InDelta(t, tt.want, fn(tt.t), 1e-12, "%s(%v)", tt.name, tt.t)
	}
}

func TestEasingFuncUnknown(t *testing.T) {
	_, err := EasingFunc("easeOutBounce")
	assert.ErrorIs(t, err, motion.ErrUnknownEasing)
	assert.Equal(t, []string{"easeInOutCubic", "easeOutCubic", "easeOutQuad"}, EasingNames())
}

func TestEasingBoundaries(t *testing.T) {
	e := NewEasing(DefaultEasingConfig())
	start := motion.Vec2{X: 0.2, Y: 0.1}
	target := motion.Vec2{X: 1, Y: -1}

	// dt=0 on the first frame reports the captured start.
	pos, _, err := e.Update(start, target, 0, motion.Vec2{})
	require.NoError(t, err)
	assert.Equal(t, start, pos)
	assert.True(t, e.Animating())

	for i := 0; i < 30; i++ {
		pos, _, err = e.Update(pos, target, 0.016, motion.Vec2{})
		require.NoError(t, err)
	}
	assert.InDelta(t, target.X, pos.X, 1e-12)
	assert.InDelta(t, target.Y, pos.Y, 1e-12)
	assert.False(t, e.Animating())

	// Holding at the target once done.
	pos, _, err = e.Update(pos, target, 0.016, motion.Vec2{})
	require.NoError(t, err)
	assert.InDelta(t, target.X, pos.X, 1e-12)
	assert.InDelta(t, target.Y, pos.Y, 1e-12)
}

func TestEasingMidpoint(t *testing.T) {
	e := NewEasing(EasingConfig{Duration: 1, Easing: "easeOutQuad"})
	target := motion.Vec2{X: 2}

	_, _, err := e.Update(motion.Vec2{}, target, 0, motion.Vec2{})
	require.NoError(t, err)
	pos, _, err := e.Update(motion.Vec2{}, target, 0.5, motion.Vec2{})
	require.NoError(t, err)

	assert.InDelta(t, 1.5, pos.X, 1e-12)
	assert.InDelta(t, 0.5, e.Elapsed(), 1e-12)
}

func TestEasingRestartsOnTargetChange(t *testing.T) {
	e := NewEasing(EasingConfig{Duration: 1, Easing: "easeOutQuad"})
	first := motion.Vec2{X: 1}

	pos, _, err := e.Update(motion.Vec2{}, first, 0.5, motion.Vec2{})
	require.NoError(t, err)
	assert.InDelta(t, 0.75, pos.X, 1e-12)

	// New target: re-anchor at the current position, not the original start.
	second := motion.Vec2{X: 1, Y: 1}
	next, _, err := e.Update(pos, second, 0, motion.Vec2{})
	require.NoError(t, err)
	assert.Equal(t, pos, next)
	assert.Equal(t, 0.0, e.Elapsed())

	next, _, err = e.Update(next, second, 0.5, motion.Vec2{})
	require.NoError(t, err)
	assert.InDelta(t, 0.75+(1-0.75)*0.75, next.X, 1e-12)
	assert.InDelta(t, 0.75, next.Y, 1e-12)
}

func TestEasingUnchangedTargetDoesNotRestart(t *testing.T) {
	e := NewEasing(DefaultEasingConfig())
	target := motion.Vec2{X: 1}

	pos := motion.Vec2{}
	for i := 0; i < 5; i++ {
		var err error
		pos, _, err = e.Update(pos, motion.Vec2{X: 1}, 0.01, motion.Vec2{})
		require.NoError(t, err)
	}
	assert.InDelta(t, 0.05, e.Elapsed(), 1e-12)
	assert.Less(t, pos.X, target.X)
}

func TestEasingUnknownFunc(t *testing.T) {
	e := NewEasing(EasingConfig{Duration: 0.3, Easing: "bogus"})
	current := motion.Vec2{X: 0.3}
	vel := motion.Vec2{Y: 1}

	pos, v, err := e.Update(current, motion.Vec2{X: 1}, 0.1, vel)
	require.Error(t, err)
	assert.ErrorIs(t, err, motion.ErrUnknownEasing)
	assert.Equal(t, current, pos)
	assert.Equal(t, vel, v)
	assert.Equal(t, 0.0, e.Elapsed())
}

func TestEasingReset(t *testing.T) {
	e := NewEasing(DefaultEasingConfig())
	_, _, err := e.Update(motion.Vec2{}, motion.Vec2{X: 1}, 0.1, motion.Vec2{})
	require.NoError(t, err)

	e.Reset()
	assert.False(t, e.Animating())

	start := motion.Vec2{X: 0.9}
	pos, _, err := e.Update(start, motion.Vec2{X: 1}, 0, motion.Vec2{})
	require.NoError(t, err)
	assert.Equal(t, start, pos)
}

func TestEasingNonPositiveDurationSnaps(t *testing.T) {
	e := NewEasing(EasingConfig{Duration: 0, Easing: DefaultEasingFunc})

	pos, _, err := e.Update(motion.Vec2{}, motion.Vec2{X: 1, Y: 1}, 0, motion.Vec2{})
	require.NoError(t, err)
	assert.Equal(t, motion.Vec2{X: 1, Y: 1}, pos)
}

func TestEasingCheckpointRestores(t *testing.T) {
	e := NewEasing(EasingConfig{Duration: 1, Easing: "easeOutQuad"})
	target := motion.Vec2{X: 1}

	_, _, err := e.Update(motion.Vec2{}, target, 0.2, motion.Vec2{})
	require.NoError(t, err)

	restore := e.Checkpoint()
	_, _, err = e.Update(motion.Vec2{X: 0.5}, motion.Vec2{X: -1}, 0.3, motion.Vec2{})
	require.NoError(t, err)
	assert.InDelta(t, 0.3, e.Elapsed(), 1e-12)

	restore()
	assert.InDelta(t, 0.2, e.Elapsed(), 1e-12)
	assert.True(t, e.Animating())

	pos, _, err := e.Update(motion.Vec2{}, target, 0.3, motion.Vec2{})
	require.NoError(t, err)
	assert.InDelta(t, 0.75, pos.X, 1e-12)
}
