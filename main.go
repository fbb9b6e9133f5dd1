package main

import (
	"os"

	"github.com/wifeymooc/quizkit/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
