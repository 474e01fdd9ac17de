package main

import "hf-council/internal/commands"

func main() {
	commands.Execute()
}
