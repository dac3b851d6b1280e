package main

import "github.com/mouse-blink/codeeraser/cmd"

func main() {
	cmd.Execute()
}
