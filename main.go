package main

import (
	"log"

	"tour-booking/cmd"
)

func main() {
	if err := cmd.RunServer(); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}
