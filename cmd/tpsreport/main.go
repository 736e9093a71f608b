// main is the entry point for the tpsreport CLI.
package main

import (
	"os"

	"github.com/tpsops/tpsreport/cmd"
	"github.com/tpsops/tpsreport/internal/snapstore"
)

func main() {
	// Hand the global store manager to the command layer before execution.
	// Stores are initialized lazily in each command's PreRunE.
	cmd.SetSnapshotManager(snapstore.Manager)

	err := cmd.Execute()
	snapstore.CloseStores()
	if err != nil {
		os.Exit(1)
	}
}
