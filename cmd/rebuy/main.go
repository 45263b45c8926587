// main holds the entry logic for the rebuy CLI.
package main

import (
	"os"

	"github.com/rebuylabs/rebuy/cmd"
	"github.com/rebuylabs/rebuy/internal/contract"
	"github.com/rebuylabs/rebuy/internal/snapshot"
)

func main() {
	cmd.SetSnapshotManager(snapshot.Manager)

	err := cmd.Execute()
	snapshot.CloseStore()
	if err != nil {
		contract.LogWarn("command failed", err)
		os.Exit(1)
	}
}
