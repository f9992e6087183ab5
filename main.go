package main

import "github.com/lexframe-labs/lexframe-cli/internal/adapters/driving/cli"

func main() {
	cli.Execute()
}
