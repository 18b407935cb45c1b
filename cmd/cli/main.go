package main

import "hoteldesk/internal/cli/cmd"

func main() {
	cmd.Execute()
}
