package main

import "github.com/lepinkainen/cinerelay/cmd"

var execute = cmd.Execute

func main() {
	execute()
}
