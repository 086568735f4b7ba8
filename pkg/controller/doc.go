// Package controller maps operator actions onto dispatcher calls and maps the
// outcome back onto the form, the results table and the status region.
//
// Each resource controller keeps no state of its own beyond an in-flight
// token: the form port is the only holder of entity values. A response is
// rendered only when it belongs to the most recently issued action for that
// resource, so overlapping requests resolve last-writer-wins by issuance
// rather than by completion order.
package controller
