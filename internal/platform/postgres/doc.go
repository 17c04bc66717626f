// Package postgres provides PostgreSQL implementations of the store interfaces
// defined in internal/store. It opens connections through the pgx stdlib
// driver, owns the embedded goose migrations for the schema, and maps driver
// errors onto the store error taxonomy.
package postgres
