// cmd/graphusersearch/main.go
package main

import (
	"os"

	"github.com/deploymenttheory/go-graph-user-search/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
