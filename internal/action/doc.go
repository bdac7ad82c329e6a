// Package action defines the identity of abstract input actions.
//
// An action is an application-defined concept such as "Jump" or
// "Movement", independent of the physical device that drives it. Each
// action belongs to a group, and carries a Kind fixed at registration:
//
//   - KindDualAxis: a direction in a plane, queried as a 2-vector
//   - KindSingleAxis: a direction along one axis, queried as a scalar
//   - KindContinuous: an on/off signal that may stay on for many frames
//   - KindPulse: an instantaneous event, true for exactly one frame
//
// Actions are declared in a Registry before any configuration is loaded.
// Re-registering an identical action is a no-op; re-registering it with a
// different kind fails.
//
// Typed handles (Handle[Pulse], Handle[DualAxis], ...) carry the kind in
// the Go type so that queries made through them cannot mismatch.
package action
