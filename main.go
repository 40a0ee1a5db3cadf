package main

import "github.com/eslsoft/jmdictdb/cmd"

func main() {
	cmd.Execute()
}
