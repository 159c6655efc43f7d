// Package ui renders terminal output for the CLI with lipgloss styles.
//
// [RenderStatus] reports the stored Spotify credential and where it sits relative to its
// safe-expiry margin ([StateOf]).
package ui
