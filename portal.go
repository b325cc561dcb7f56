package main

import (
	"github.com/carewell/portal/api"
)

func main() {
	api.MainLoop()
}
