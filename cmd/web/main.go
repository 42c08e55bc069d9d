package main

import "proposalforge_backend/internal/app"

func main() {
	app.Run()
}
