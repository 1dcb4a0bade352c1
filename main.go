package main

import "chatbridge/cmd"

func main() {
	cmd.Execute()
}
