// Package version provides build-time version information.
//
// Set the variables with ldflags:
//
//	go build -ldflags "\
//	  -X github.com/ncobase/nodesearch/version.Version=1.2.3 \
//	  -X github.com/ncobase/nodesearch/version.Branch=main \
//	  -X github.com/ncobase/nodesearch/version.Revision=abc123 \
//	  -X 'github.com/ncobase/nodesearch/version.BuiltAt=$(date)'" ./cmd/nodesearch
//
// Unset values fall back to the VCS stamp Go embeds in the binary.
package version
