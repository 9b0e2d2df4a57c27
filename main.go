package main

import "github.com/jsphweid/voicesplit/cmd"

func main() {
	cmd.Execute()
}
