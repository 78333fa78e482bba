package turing

// Version is the release of the library and the turing binary.
// Release builds override it with -ldflags "-X github.com/aretw0/turing.Version=...".
var Version = "0.3.0"
