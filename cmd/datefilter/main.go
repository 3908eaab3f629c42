package main

import (
	"github.com/theplant/datefilter/internal/cli"
)

func main() {
	cli.Execute()
}
