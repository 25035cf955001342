package main

import "github.com/dabecart/VVToolkit/cmd"

func main() {
	cmd.Execute()
}
