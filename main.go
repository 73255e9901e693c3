package main

import "github.com/farsishop/storefront/app/cmd"

func main() {
	cmd.RunCli()
}
