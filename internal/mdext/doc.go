// Package mdext holds small goldmark extensions used by the renderer:
// abbreviation definitions and icon font shortcodes. It also records the
// priorities of every extension in this module.
package mdext
