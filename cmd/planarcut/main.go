package main

import "github.com/avkarpov/planarcut/cmd/planarcut/commands"

func main() {
	commands.Execute()
}
