package main

import (
	"os"

	"github.com/rdb2csv/rdb2csv/cli"
)

func main() {
	os.Exit(cli.Execute())
}
