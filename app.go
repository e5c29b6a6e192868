package main

import (
	"os"

	"github.com/masmgr/lltc4j-export/cmd"
)

func main() {
	os.Exit(cmd.Run(os.Args, os.Stdout, os.Stderr))
}
