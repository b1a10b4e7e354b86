package version

// Current defines the application version.
// It defaults to "dev" but is overwritten by the Makefile using -ldflags.
var Current = "dev"

// Commit is the source revision, injected via -ldflags.
var Commit = "none"

const AppName = "graphedit"
