package main

import (
	"github.com/cengizhan/substack-sync/cmd"
)

func main() {
	cmd.Execute()
}
