package commands

import (
	"fmt"
	"os"
	"strings"
)

const Version = "0.1.0"

// PrintVersion prints the version of the distro tool and exits
func PrintVersion() {
	fmt.Printf("distro version %s\n", Version)
	os.Exit(0)
}

// splitPackageArg splits "name@version" into its parts; version is empty without '@'
func splitPackageArg(arg string) (string, string) {
	name, version, found := strings.Cut(arg, "@")
	if !found {
		return arg, ""
	}
	return name, version
}

// contains checks if a slice contains a specific string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
