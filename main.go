package main

import "github.com/redrazor111/burn-back/cmd/burnback"

func main() {
	burnback.Execute()
}
