package main

import "gigcircle.com/gigcircle/cmd"

func main() {
	cmd.Execute()
}
