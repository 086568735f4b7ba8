// Package model defines the wishlist and product entities exchanged with the
// remote API. Identifiers and quantities are carried as Scalar values so that
// whatever the server sends (string or number) is rendered back verbatim into
// form fields without coercion.
package model
