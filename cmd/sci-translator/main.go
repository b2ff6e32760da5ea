package main

import "sci-translator/internal/cli"

func main() {
	cli.Execute()
}
