// Package ui provides the Bubble Tea TUI for hnbar.
package ui

// noticeExpired clears the header notice it was scheduled for.
type noticeExpired struct {
	seq int
}
