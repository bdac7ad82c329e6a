// Package ineffable is the input engine.
//
// A Context ties together an action registry, the live input
// configuration and one tracker per registered action. Each frame the host
// calls Update with a snapshot of raw device values and the elapsed time;
// afterwards game code asks about actions instead of keys:
//
//	ctx := ineffable.New(reg)
//	if _, err := ctx.SetConfig(cfg); err != nil {
//		// The report wrapped in err names every offending binding.
//	}
//	for {
//		ctx.Update(frame, dt)
//		if ctx.Pulsed(jump) {
//			...
//		}
//		move := ctx.Axis2D(movement)
//	}
//
// Configurations are validated against the registry before they are
// applied. A configuration with errors is rejected as a whole and the
// previous one stays live.
package ineffable
