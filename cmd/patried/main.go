package main

import (
	"flag"
	"log"
)

func main() {
	addr := flag.String("addr", "0.0.0.0:6380", "address to listen on")
	cmdLogPath := flag.String("cmdlog", "", "path to an append-only command log; empty disables persistence")
	flag.Parse()

	server := MakeServer(*addr, nil)

	if *cmdLogPath != "" {
		if err := replayCommandLog(*cmdLogPath, server); err != nil {
			log.Fatal("failed to replay command log: ", err)
		}
		cmdLog, err := openCommandLog(*cmdLogPath)
		if err != nil {
			log.Fatal("failed to open command log: ", err)
		}
		server.cmdLog = cmdLog
	}

	server.Start()
}
