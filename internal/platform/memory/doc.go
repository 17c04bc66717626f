// Package memory provides in-process implementations of the store interfaces.
//
// The stores keep their data in maps guarded by a sync.RWMutex and record a
// span per call on the tracer they are given. They back the "memory" database
// driver used for local development and end-to-end tests; data does not
// survive a restart.
package memory
