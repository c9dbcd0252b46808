package main

import cmd "github.com/inference-gateway/hotcli/cmd"

func main() {
	cmd.Execute()
}
