package main

import "github.com/telfer/alp/cmd"

func main() {
	cmd.Execute()
}
