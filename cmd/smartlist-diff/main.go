// Command smartlist-diff compares list files or a list with its backups.
package main

import (
	"os"

	"github.com/pstuifzand/tui-smartlist/internal/cli"
	"github.com/sirupsen/logrus"
)

func main() {
	logrus.SetOutput(os.Stderr)
	logrus.SetLevel(logrus.WarnLevel)

	cmd := cli.NewDiffCmd()
	cmd.Use = "smartlist-diff <file> [other]"
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
