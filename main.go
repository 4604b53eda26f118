package main

import (
	log "github.com/sirupsen/logrus"

	"github.com/arcana-network/secretrecovery/cmd/root"
)

func main() {
	err := root.GetRootCmd().Execute()
	if err != nil {
		log.Fatalf("Could not recover secrets %s", err.Error())
	}
}
