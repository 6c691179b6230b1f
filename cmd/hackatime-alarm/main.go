package main

import "github.com/oshokin/hackatime-alarm/cmd/hackatime-alarm/cmd"

func main() {
	cmd.Execute()
}
