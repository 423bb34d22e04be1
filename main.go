package main

import (
	"context"
	"os"

	"github.com/thenoetrevino/clubhouse/cmd"
)

func main() {
	os.Exit(cmd.Execute(context.Background()))
}
