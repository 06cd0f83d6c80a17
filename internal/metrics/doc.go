// Package metrics derives the dashboard figures from an entity snapshot.
//
// Every function here is pure: inputs are never modified, the current time
// is always passed in, and identical inputs give identical outputs. The
// Aggregator assembles the individual computations into one Overview.
package metrics
