package main

import "emisi.dev/backend/cmd/app"

func main() {
	app.Run()
}
