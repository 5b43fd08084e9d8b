// Package main is the drivesync entry point.
package main

import (
	"drivesync/cmd"
	"drivesync/internal"
)

func main() {
	cmd.SetVersion(internal.GetVersionString())
	cmd.Execute()
}
