package main

import (
	"flag"
	"log"

	"riverwatch/server"
)

func main() {
	flag.Parse()
	log.Println("Hello!")
	server.StartService()
	log.Println("Bye!")
}
