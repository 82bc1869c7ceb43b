package main

import (
	"github.com/Kailash-Mistry/Interviewly/internal/cli"
	"github.com/Kailash-Mistry/Interviewly/internal/logging"
)

func main() {
	logging.Init()
	cli.Execute()
}
