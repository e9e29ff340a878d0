package main

import "github.com/khanhnv2901/seca-pin/cmd"

var execCmd = cmd.Execute

func main() {
	execCmd()
}
