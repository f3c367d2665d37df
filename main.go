package main

import "github.com/klytics/formkit/cmd"

func main() {
	cmd.Execute()
}
