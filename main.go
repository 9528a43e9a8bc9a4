package main

import "github.com/code-sleuth/vektara-go/cmd"

func main() {
	cmd.Execute()
}
