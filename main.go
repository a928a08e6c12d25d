package main

import "s2-corpus/cmd"

func main() {
	cmd.Execute()
}
