// Package stores persists kitchen session history in SQLite.
//
// The schema is embedded and applied with golang-migrate. A session row is
// written when a run starts; SessionRecorder collects narration while the
// fulfillment loop runs and Persist writes the outcome, final order states,
// narration and a closing stock snapshot.
package stores
