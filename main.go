package main

import "photo-album-backend/cmd"

func main() {
	cmd.Run()
}
