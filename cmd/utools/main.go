package main

import "github.com/GregMSThompson/utools/internal/commands"

func main() {
	commands.Execute()
}
