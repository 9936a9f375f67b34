package main

import "crewops/internal/app/server"

func main() {
	server.Run()
}
