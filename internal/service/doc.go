// Package service contains the application use cases. It orchestrates domain
// objects and the store interfaces defined in internal/store to fulfill the
// product catalog and account features.
//
// Services receive their dependencies through constructor injection and never
// depend on a concrete store implementation. They return sentinel errors for
// expected conditions (ErrNotOwned, ErrInvalidCredentials, the store not-found
// and duplicate errors, domain validation errors) and wrap everything else in
// ProductServiceError or UserServiceError. The API layer maps these to HTTP
// status codes.
package service
