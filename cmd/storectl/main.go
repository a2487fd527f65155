package main

import "github.com/vividmart/storefront/cmd/storectl/cmd"

func main() {
	cmd.Execute()
}
