package main

import "github.com/docveil/docveil/cmd/docveil/cmd"

func main() {
	cmd.Execute()
}
