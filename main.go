package main

import "github.com/geocasagroup/portal/cmd"

func main() {
	cmd.Execute()
}
