package discovery

import "time"

// Warning records a directory the scanner could not read
type Warning struct {
	Path string
	Err  error
}

// Result summarises one build, update or prune run
type Result struct {
	Root      string        // Resolved scan root, empty for Prune
	Added     []string      // Paths newly indexed
	Refreshed []string      // Paths already indexed and seen again
	Removed   []string      // Paths dropped from the index
	Warnings  []Warning     // Unreadable directories skipped during the walk
	Scanned   int           // Number of directories visited
	Duration  time.Duration // Time taken
}
