package main

import "organizer/cmd/client/cmd"

func main() {
	cmd.Execute()
}
