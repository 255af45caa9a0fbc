package main

import "github.com/tsutils/tsutils/cmd/tsutils/commands"

func main() {
	commands.Execute()
}
