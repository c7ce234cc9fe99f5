package main

import "github.com/stuttgart-things/secret-populator/cmd"

func main() {
	cmd.Execute()
}
