package main

import "github.com/lvyitian/govm-link/cmd/classlink/cmd"

func main() {
	cmd.Execute()
}
