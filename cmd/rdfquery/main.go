package main

import (
	"log"
)

func main() {
	if err := NewRootCommand().Execute(); err != nil {
		log.Fatalf("rdfquery: %v", err)
	}
}
