package main

import (
	"github.com/iburimskiy/wave-line/cmd"
)

func main() {
	cmd.Execute()
}
