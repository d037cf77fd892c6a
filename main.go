package main

import "github.com/CraigKelly/mcrun/cmd"

func main() {
	cmd.Execute()
}
