package main

import (
	"log"

	"furuth/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		log.Fatalf("❌ %v", err)
	}
}
