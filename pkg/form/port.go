// Package form binds resource attributes to named, single-value form fields.
// Controllers never touch a UI directly; they read and write through a Port so
// the same rules drive a terminal session, a web console or a test double.
package form

// Port is the minimal view of a set of named inputs.
type Port interface {
	Value(name string) string
	SetValue(name, value string)
}
