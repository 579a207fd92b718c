package main

import "github.com/unohee/ci-templates/internal/cli"

func main() {
	cli.Execute()
}
