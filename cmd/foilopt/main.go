package main

import "github.com/aalvaropc/foilopt/internal/cli"

func main() {
	cli.Execute()
}
