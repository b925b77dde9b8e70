package main

import "videograb/cmd"

func main() {
	cmd.Execute()
}
