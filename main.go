package main

import "github.com/obsidiansystems/libtmux/cmd"

func main() {
	cmd.Execute()
}
