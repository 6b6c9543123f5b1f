package assets

import (
	"fmt"
	"strings"
)

// AssetError reports every required image missing from one themed directory.
type AssetError struct {
	Dir     string
	Missing []string
}

func (e *AssetError) Error() string {
	return fmt.Sprintf("%s missing: %s", e.Dir, strings.Join(e.Missing, ", "))
}
