// Package analytics derives production-cycle boundaries and pond performance
// metrics from raw event snapshots.
//
// Every function is a pure computation over the values it is given. Nothing
// is cached between calls and the reference instant is always passed in, so
// identical inputs yield identical outputs. Missing or zero biological inputs
// degrade to zero values instead of errors.
package analytics
