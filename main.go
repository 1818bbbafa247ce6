package main

import "github.com/perch-labs/vitelink/cmd"

func main() {
	cmd.Execute()
}
