package main

import "github.com/jsphweid/harmonet/cmd"

func main() {
	cmd.Execute()
}
