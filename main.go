package main

import "github.com/theirongolddev/cstat/cmd"

func main() {
	cmd.Execute()
}
