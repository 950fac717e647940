//go:build mage
// +build mage

package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/magefile/mage/mg"
)

// Default target to run when none is specified
// If not set, running mage will list available targets
var Default = Build

// Build compiles every executable into ./bin
func Build() error {
	mg.Deps(BuildComparison, BuildMM2Resolution, BuildEventCSV)
	fmt.Println("Compilation finished")
	return nil
}

func BuildComparison() error {
	return buildExecutable("comparison")
}

func BuildMM2Resolution() error {
	return buildExecutable("mm2resolution")
}

func BuildEventCSV() error {
	return buildExecutable("eventcsv")
}

// Test runs the unit tests. The HDF5 store needs cgo like the builds do.
func Test() error {
	cmd := cgoCommand("go", "test", "./...")
	return cmd.Run()
}

func buildExecutable(name string) error {
	fmt.Printf("Building %s executable...\n", name)
	cmd := cgoCommand("go", "build", "-o", "./bin/"+name, "./"+name)
	return cmd.Run()
}

func cgoCommand(name string, args ...string) *exec.Cmd {
	ldflags := os.Getenv("CGO_LDFLAGS")
	cflags := os.Getenv("CGO_CFLAGS")
	cmd := exec.Command(name, args...)
	cmd.Env = append(os.Environ(),
		"CGO_ENABLED=1",
		fmt.Sprintf("CGO_LDFLAGS=%s", ldflags),
		fmt.Sprintf("CGO_CFLAGS=%s", cflags))
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd
}
