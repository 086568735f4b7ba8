// Package contract checks the dispatcher's endpoint table against an OpenAPI
// description of the wishlist server. The expected contract ships embedded;
// a live server's published document can be checked the same way.
package contract
