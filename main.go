package main

import "github.com/kebairia/pgward/cmd"

func main() {
	cmd.Execute()
}
