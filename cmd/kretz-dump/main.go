// Command kretz-dump prints the header, layout and voxel statistics of
// kretzfiles. Useful to confirm what the loader actually reads from a scan.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
