// Package editor holds the editor-side state consumed by the cursor renderer:
// the cursor snapshot with its shape and blink configuration, the mode table
// that maps editor modes to cursor styles, and the shared character grid.
//
// The renderer never mutates this state. The grid is shared with session
// ingestion running independently; reads from the render path use a
// try-acquire so lock contention surfaces as an error for that frame instead
// of stalling the render loop.
package editor
