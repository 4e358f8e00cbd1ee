package main

import "github.com/stepwatch/stepwatch/cmd"

func main() {
	cmd.Execute()
}
