// Command staticcached serves a directory over HTTP through an
// in-memory, access-frequency-admitted file cache.
package main

import (
	"fmt"
	"os"

	"github.com/meigma/filecache/cmd/staticcached/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "staticcached:", err)
		os.Exit(1)
	}
}
