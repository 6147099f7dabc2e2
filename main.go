package main

import "github.com/KaramelBytes/riskprep-cli/cmd"

func main() {
	cmd.Execute()
}
