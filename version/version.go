package version

import (
	"fmt"
)

const (
	Version = "0.3.0"
)

// VersionString is used as the producer of generated documents.
var VersionString = fmt.Sprintf("Go-Paginate %s", Version)
