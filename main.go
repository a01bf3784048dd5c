package main

import (
	"os"

	"github.com/tristanpoland/GCD/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
