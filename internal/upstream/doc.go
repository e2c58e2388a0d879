// Package upstream defines the shared error taxonomy for failures of
// the remote calendar and table-store providers. Service operations
// return these classified errors instead of collapsing every failure
// into an empty result, so adapters can tell "no data" apart from
// "provider call failed".
package upstream
