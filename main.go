package main

import "github.com/relnorm/relnorm/cmd"

func main() {
	cmd.Execute()
}
