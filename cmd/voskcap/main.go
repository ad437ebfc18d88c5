package main

import "github.com/forPelevin/voskcap/internal/cli"

func main() {
	cli.Main()
}
