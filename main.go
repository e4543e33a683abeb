package main

import "parity-check/cmd"

func main() {
	cmd.Execute()
}
