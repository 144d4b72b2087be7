package main

import "github.com/iudx/rs-client/cmd"

func main() {
	cmd.Execute()
}
