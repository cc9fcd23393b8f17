package main

import "github.com/hostsentry/hostsentry/cmd"

func main() {
	cmd.Execute()
}
