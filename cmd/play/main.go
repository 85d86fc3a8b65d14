package main

import (
	"cricketarcade/internal/server"
	"log"
)

func main() {
	if err := server.RunHost(); err != nil {
		log.Fatal(err.Error())
	}
}
