package main

import "github.com/truemediaorg/crosspostfields/cmd"

func main() {
	cmd.Execute()
}
