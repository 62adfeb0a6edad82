// Package model defines domain data structures shared across the app: the
// resolved playlist, the raw fetch result of one item, the inferred track
// metadata, per-item states, and the running batch progress.
package model
