package main

import "github.com/RyanBlaney/sonido-scope/cmd"

func main() {
	cmd.Execute()
}
