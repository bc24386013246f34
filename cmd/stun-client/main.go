// SPDX-FileCopyrightText: 2025 The RelayKit Authors
// SPDX-License-Identifier: MIT

// Command stun-client sends a binding request to the given STUN server
// and prints the reflexive transport address.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pion/logging"

	"github.com/relaykit/stun"
)

func main() {
	uriStr := flag.String("uri", fmt.Sprintf("stun:stun.l.google.com:%d", stun.DefaultPort), "STUN server URI")
	flag.Parse()

	loggerFactory := logging.NewDefaultLoggerFactory()
	log := loggerFactory.NewLogger("stun-client")

	uri, err := stun.ParseURI(*uriStr)
	if err != nil {
		log.Errorf("invalid URI %q: %v", *uriStr, err)
		os.Exit(1)
	}
	client, err := stun.DialURI(uri, &stun.DialConfig{})
	if err != nil {
		log.Errorf("dial failed: %v", err)
		os.Exit(1)
	}
	defer func() {
		if closeErr := client.Close(); closeErr != nil {
			log.Errorf("close failed: %v", closeErr)
		}
	}()

	request := stun.MustBuild(stun.TransactionID, stun.BindingRequest)
	if err = client.Do(request, func(event stun.Event) {
		if event.Error != nil {
			log.Errorf("transaction failed: %v", event.Error)

			return
		}
		var addr stun.XORMappedAddress
		if getErr := addr.GetFrom(event.Message); getErr != nil {
			log.Errorf("failed to decode XOR-MAPPED-ADDRESS: %v", getErr)

			return
		}
		fmt.Println(addr) //nolint:forbidigo
	}); err != nil {
		log.Errorf("do failed: %v", err)
		os.Exit(1)
	}
}
