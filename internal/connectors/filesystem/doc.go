// Package filesystem reads catalog documents from a local data directory.
//
// The manifest and every document it lists are paths relative to the data
// directory. Paths that escape the directory are rejected. The source also
// implements driven.Watcher using fsnotify, coalescing bursts of file events
// into single change signals.
package filesystem
