package main

import "github.com/Alekasndr/graphedit/cmd/graphedit/commands"

func main() {
	commands.Execute()
}
