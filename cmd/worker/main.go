package main

import (
	"log"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: worker merge <templateFile> <engineID> <dataFile.json> [convertFormat]")
	}

	switch os.Args[1] {
	case "merge":
		RunMerge(os.Args[2:])
	default:
		log.Fatalf("unknown command: %s", os.Args[1])
	}
}
