package main

import (
	"github.com/userdir/userdir/cmd/userdir/cli"
)

func main() {
	cli.InitAndExecute()
}
