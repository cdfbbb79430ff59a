// Package handler is the entry point for request logic after the
// router.
//
// It parses requests, handles input validation using the validation
// package, and executes against the database pool. It acts as the
// interface between the HTTP request and the query execution core.
package handler
