package main

import (
	"student-activity-system/cmd/server"
)

func main() {
	server.Init()
	server.Run()
}
