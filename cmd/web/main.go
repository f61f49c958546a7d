package main

import "accomform_backend/internal/app"

func main() {
	app.Run()
}
