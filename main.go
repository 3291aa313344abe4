package main

import "github.com/nextwavelab/lingorelay/cmd"

func main() {
	cmd.Execute()
}
