package main

import "github.com/ksnavely/dmp/cmd"

func main() {
	cmd.Execute()
}
