package main

import (
	"github.com/asalehi100/ibm-techxchange-hack/cmd"
)

// version will be set by goreleaser during build
var version = "dev"

func main() {
	cmd.SetVersion(version)
	cmd.Execute()
}
