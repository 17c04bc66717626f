// Package store defines the persistence contracts for users and products.
// Implementations live under internal/platform (mongodb, postgres, memory);
// the service layer depends only on these interfaces and the errors below.
package store
