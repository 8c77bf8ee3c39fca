package main

import "github.com/matthieukhl/oms/internal/cmd"

func main() {
	cmd.Execute()
}
