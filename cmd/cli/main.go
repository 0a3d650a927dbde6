package main

import "confedit/cmd/cli/app/cmd"

func main() {
	cmd.Execute()
}
