package main

import "github.com/K0NGR3SS/slrledger/commands"

func main() {
	commands.Execute()
}
