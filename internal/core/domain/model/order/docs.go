// Package order provides the confirmed-order aggregate.
//
// An Order is created exactly once per checkout session, after the
// submission gateway accepts the order. It carries the session's
// idempotency token, the exact subtotal, and display summaries of the
// fulfillment and payment choices, plus a Status state machine driven by
// the kitchen (Confirmed -> Preparing -> Ready -> Completed).
package order
