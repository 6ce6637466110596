package main

import "github.com/tanq16/workshopdl/cmd"

func main() {
	cmd.Execute()
}
