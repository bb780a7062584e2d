// Package testing provides deterministic drivers for exercising headless
// components without a host: a fake clock and scheduler that fire timers
// in virtual time, and pointer and key drivers that emit event sequences.
//
//	sched := drifttest.NewFakeScheduler()
//	btn := widgets.NewButton(env, widgets.ButtonConfig{OnPressed: onPress})
//	keys := drifttest.NewKeyDriver(env.Focus)
//	keys.Press(input.KeyEnter)
//	sched.Advance(100 * time.Millisecond)
package testing
