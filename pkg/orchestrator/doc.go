// Package orchestrator wires the wishlist and product controllers to a shared
// form, status line and results tables, and renders the console after each
// action through a renderer registry. Every front end drives the console
// through Run.
package orchestrator
