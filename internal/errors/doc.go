// Package errors provides structured errors for the rpg-combat project.
//
// Every failure in the combat core is reported synchronously to the
// immediate caller as an *Error carrying a Code. Nothing is retried or
// silently clamped away.
//
// # Basic Usage
//
// Creating errors:
//
//	err := errors.InvalidBoundsf("max %d is below min %d", max, min)
//	err := errors.NotFound("combatant not found")
//
// Adding metadata:
//
//	err := errors.InvalidDelta("delta must not be negative").
//	    WithMeta("delta", delta)
//
// Wrapping errors keeps the original code:
//
//	if err := hp.SetMax(v); err != nil {
//	    return errors.Wrap(err, "failed to grow max hp")
//	}
//
// # Error Checking
//
//	if errors.IsAtMaxLevel(err) {
//	    // nothing left to earn
//	}
//
// # Combat Codes
//
//   - InvalidBounds: min would exceed max
//   - DivisionByZero: division by zero, or ratio of a gauge with max == min
//   - InvalidDelta: negative delta where only non-negative is accepted
//   - AtMaxLevel: next level requested at the terminal level
//   - UnsupportedElement: element outside the closed enumeration
//
// The generic codes (NotFound, InvalidArgument, AlreadyExists,
// FailedPrecondition, Internal, Unavailable) are used by the repository,
// orchestrator and CLI layers.
package errors
