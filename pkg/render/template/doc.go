// Package template defines the template engine contract used by the HTML
// console renderer.
package template
