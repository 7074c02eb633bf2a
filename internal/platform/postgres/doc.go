// Package postgres provides PostgreSQL implementations of the store
// interfaces, using database/sql with the pgx driver. It also embeds the
// goose schema migrations.
//
// Category and task mutations go through ownedTable, which adds the owner to
// every WHERE clause.
package postgres
