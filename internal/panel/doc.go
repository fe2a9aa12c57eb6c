// Package panel implements the iframe lifecycle state machine of the
// dashboard.
//
// The state tracks, per link, whether its iframe content is loaded, whether
// the link is the one currently shown, the last load error and how often a
// reload was attempted. Reduce is a pure function; dispatching an action that
// changes nothing returns the input state unchanged, so callers can compare
// states by reference to skip re-renders.
//
// Loaded is independent of visibility: a link keeps its fetched iframe
// content while hidden, enabling fast re-activation without a reload. At most
// one link is visible at any time.
package panel
