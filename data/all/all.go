// Package all registers every database and search driver at once.
//
//	import _ "github.com/ncobase/nodesearch/data/all"
//
// Binaries that only need one backend can import its driver package instead:
//
//	import (
//	    _ "github.com/ncobase/nodesearch/data/elasticsearch"
//	    _ "github.com/ncobase/nodesearch/data/postgres"
//	)
package all

import (
	// Database drivers
	_ "github.com/ncobase/nodesearch/data/mysql"
	_ "github.com/ncobase/nodesearch/data/postgres"
	_ "github.com/ncobase/nodesearch/data/sqlite"

	// Search drivers
	_ "github.com/ncobase/nodesearch/data/elasticsearch"
	_ "github.com/ncobase/nodesearch/data/opensearch"
)
