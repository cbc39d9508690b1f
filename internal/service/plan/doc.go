// Package plan implements saved-plan lifecycle management.
//
// The service layer contains all business logic for saving generated
// plans, listing them per user, and confirming them. It depends on the
// repository interface defined in this package and should never import
// from the HTTP layer.
//
// The Postgres repository implementation lives in repository/postgres/.
package plan
