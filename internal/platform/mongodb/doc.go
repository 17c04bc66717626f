// Package mongodb provides MongoDB implementations of the store interfaces,
// built on the official mongo-driver. Documents use ObjectID primary keys whose
// hex form is the public identifier; a string that is not a valid ObjectID is
// reported as not found.
package mongodb
