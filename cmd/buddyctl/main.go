package main

import "treehouse/cmd/buddyctl/root"

func main() {
	root.Execute()
}
