package main

import (
	"log"

	"github.com/aurora-editor/gitkit/cmd"
)

func main() {
	if err := cmd.Run(); err != nil {
		log.Fatalf("gitkit: %v", err)
	}
}
