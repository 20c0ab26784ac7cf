package main

import "github.com/chayuto/ai-truffle-hog/cmd"

func main() {
	cmd.Execute()
}
