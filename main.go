package main

import "github.com/frahmantamala/allowance-management/cmd"

func main() {
	cmd.Execute()
}
