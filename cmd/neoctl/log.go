package main

import (
	"github.com/neonetwork/neosdk/rpcclient"
	"github.com/neonetwork/neosdk/util/log"
)

// enableRPCLogging turns on debug logging and routes the RPC client's
// request/response log through it, so the body of every call becomes
// visible on stderr.
func enableRPCLogging() {
	log.Init("", true)
	log.SetPrefix("neoctl")
	rpcclient.UseLogger(log.DebugLogger())
}
