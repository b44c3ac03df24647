package main

import "github.com/oshokin/oneshot/cmd"

func main() {
	cmd.Execute()
}
