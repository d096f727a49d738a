// Package reconstruct turns chronologically ordered snapshots of raw position
// pings into validated per-participant tracks.
//
// A run decodes every ping, passes it through the caller's coordinate gate,
// looks up the participant's open track, computes the motion vector from the
// track's last point and either appends the ping or starts a new track when the
// gap is too large. Finished tracks that are too short are dropped and the time
// range of the survivors is reported.
//
// Data problems never fail a run: offending pings are logged, counted in
// models.Diagnostics and dropped. Bookkeeping bugs panic.
//
// All state lives in one run; Run is safe to call concurrently.
package reconstruct
