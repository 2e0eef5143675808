package main

import "github.com/JojoFlex1/done/cmd"

func main() {
	cmd.Execute()
}
