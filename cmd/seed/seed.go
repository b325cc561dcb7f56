package main

import (
	"github.com/carewell/portal/cmd/seed/command"
)

func main() {
	command.Execute()
}
