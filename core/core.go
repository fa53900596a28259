// Package core implements the financial impact and confidence scoring engine.
//
// Every function here is a pure, deterministic computation over read-only
// snapshots supplied by the caller: time metrics per action, baseline window
// selection around an implementation date, monetary savings with ROI and
// payback, a 0-100 confidence score, and the champion ranking with its
// append-only score log. The engine does no I/O of its own and holds no
// shared mutable state, so calls are safe to fan out concurrently.
package core
