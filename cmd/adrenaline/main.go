package main

import "adrenaline/cmd/adrenaline/cmd"

func main() {
	cmd.Execute()
}
