package snapshot

import (
	"fmt"

	"github.com/rebuylabs/rebuy/schema"
)

// PrintStatus prints snapshot store status information.
func PrintStatus(status schema.SnapshotStatus) {
	fmt.Printf("Snapshot Backend: %s\n", status.Backend)
	if status.Backend == schema.NoneBackend {
		return
	}
	fmt.Printf("Location: %s\n", status.Location)
	fmt.Printf("Total Runs: %d\n", status.RunCount)
	fmt.Printf("Total Comparison Rows: %d\n", status.RowCount)
}
