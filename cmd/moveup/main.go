package main

import (
	"github.com/moveup-labs/moveup-go-sdk/cmd/moveup/cmd"
)

func main() {
	cmd.Execute()
}
