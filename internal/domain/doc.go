// Package domain contains the core marketplace entities (User, Product) and the
// validation rules that must hold before anything is written to a store.
// It is independent of any storage engine or delivery mechanism.
package domain
