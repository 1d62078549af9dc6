package main

import (
	"os"

	"github.com/toolchest/rig/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
