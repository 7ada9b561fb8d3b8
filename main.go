package main

import (
	"fmt"
	"os"

	"github.com/pstuifzand/tui-smartlist/internal/cli"
	"github.com/sirupsen/logrus"
)

func main() {
	logFile, err := os.OpenFile("smartlist.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	logrus.SetOutput(logFile)
	logrus.SetReportCaller(true)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})

	if err := cli.Execute(); err != nil {
		logrus.Errorf("Exiting: %v", err)
		os.Exit(1)
	}
}
