package main

import "homekeeper/cmd/client/cmd"

func main() {
	cmd.Execute()
}
