// Package motion provides the core types shared by the cursor pipeline.
//
// A frame flows through three stages:
//
//   - [Strategy]: smooths the raw target into a provisional position/velocity
//   - [Effect]: stateful post-processing applied in pipeline order
//   - [Observer]: notified with the committed [Frame]
//
// # Example
//
//	ctrl := cursor.New(cursor.DefaultConfig())
//	ctrl.AddEffect(effects.NewHandShake())
//	ctrl.SetTarget(0.5, -0.2)
//	if err := ctrl.Update(1.0 / 60); err != nil {
//		return err
//	}
//	pos := ctrl.Position()
//
// # Thread Safety
//
// Nothing in this package or its consumers is safe for concurrent use. The
// controller is driven from a single frame loop.
package motion
