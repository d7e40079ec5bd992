package main

import "github.com/naka-gawa/gh-activity/cmd"

func main() {
	cmd.Execute()
}
