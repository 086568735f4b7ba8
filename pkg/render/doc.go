// Package render holds the renderer contract shared by the console front ends
// together with the buffers controllers write their results into.
package render
