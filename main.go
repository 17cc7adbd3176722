package main

import "github.com/jole/ivsb/cmd"

func main() {
	cmd.Execute()
}
