package main

import (
	"os"

	"github.com/k3s-io/swiftclient/pkg/app"
	"github.com/k3s-io/swiftclient/pkg/metrics"
	"github.com/sirupsen/logrus"
)

func main() {
	metrics.RegisterRuntimeCollectors()
	if err := app.New().Run(os.Args); err != nil {
		logrus.Fatal(err)
	}
}
