package main

import "github.com/kamusis/gendex/cmd"

func main() {
	cmd.Execute()
}
