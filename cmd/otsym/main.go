package main

import "github.com/OpenTraceLab/OpenTraceSym/cmd/otsym/cmd"

func main() {
	cmd.Execute()
}
