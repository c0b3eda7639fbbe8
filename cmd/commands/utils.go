package commands

import (
	"fmt"
	"os"

	"storysync/pkg/logger"
)

func ExitOnError(err error) {
	logger.Error("storysync error", "err", err.Error())
	os.Exit(1)
}

func HandleHelp(_ []string) {
	fmt.Println(`storysync - journal synchronization engine

usage:
  storysync run <config.yml>   start the engine
  storysync version            print the version
  storysync help               show this message`) //nolint
}
