// Package mdfu adapts the external pymdfu firmware-transfer tool: it
// resolves the executable across heterogeneous installation layouts, builds
// the update invocation, relays the tool's merged output line by line, and
// maps its exit status back to the caller.
package mdfu
