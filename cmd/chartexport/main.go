// Command chartexport builds the dashboard from the merged dataset without
// starting a server and writes chart tables, SVGs or the page to disk.
//
// Usage:
//
//	chartexport list
//	chartexport tables --format csv --out exports/
//	chartexport svg --out charts/
//	chartexport page --out dashboard.html
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
