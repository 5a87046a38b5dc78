package main

import (
	"os"

	"github.com/scan-io-git/meetup-data/cmd"
)

func main() {
	code := cmd.Execute()
	os.Exit(code)
}
