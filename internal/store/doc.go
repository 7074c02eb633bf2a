// Package store declares the persistence contracts for users, categories,
// tasks and revoked tokens.
//
// Every category and task lookup takes the owner's ID. A row owned by
// someone else is reported with the same not-found error as a missing row,
// so callers learn nothing about other users' data.
package store
