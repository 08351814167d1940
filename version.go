package redblack

// BinaryGitHash is the Git hash of the build. It is set with
// -ldflags "-X github.com/cyraxred/redblack.BinaryGitHash=..."
var BinaryGitHash = "<unknown>"

// BinaryVersion is the version of the output format.
var BinaryVersion = 1
