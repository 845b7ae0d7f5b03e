package main

import "github.com/RKATechSolutions/crane-care/internal/app"

func main() {
	app.Run()
}
