// Command populate seeds the clutch table with demo data and inspects it.
package main

import (
	"os"
)

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
