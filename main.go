package main

import (
	"github.com/devlink/desktop/cmd"
)

func main() {
	cmd.Execute()
}
