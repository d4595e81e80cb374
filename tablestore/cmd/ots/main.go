// ots is a CLI for local table store development.
//
// # Installation
//
//	go install github.com/acksell/otskit/tablestore/cmd/ots@latest
//
// # Commands
//
//	ots serve              Run the emulator over HTTP
//	ots ls                 List tables of an endpoint
//	ots describe <table>   Show a table's schema and throughput
//
// # Configuration
//
// Settings come from flags, then OTS_* environment variables, then ots.yaml
// in the working directory, then defaults:
//
//	endpoint: http://localhost:8800
//	instance: local
//	port: 8800
//	data_dir: ./data        # empty for in-memory
//	tables_file: tables.yaml
//	log_level: info
//	log_format: text        # or json
package main

import (
	"fmt"
	"os"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "serve":
		err = runServe(args)
	case "ls", "list":
		err = runList(args)
	case "describe":
		err = runDescribe(args)
	case "help", "-h", "--help":
		printUsage()
		return
	case "version", "-v", "--version":
		fmt.Printf("ots version %s\n", version)
		return
	default:
		fmt.Fprintf(os.Stderr, "ots: unknown command %q\n\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "ots %s: %v\n", cmd, err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`ots - table store development tools

Usage:
  ots <command> [flags]

Commands:
  serve               Run the emulator over HTTP
  ls                  List tables
  describe <table>    Show a table's schema and reserved throughput
  version             Print the version

Examples:
  # In-memory emulator seeded from a tables file:
  ots serve --tables tables.yaml

  # Persistent emulator on another port:
  ots serve --data-dir ./data --port 9000

  # Inspect a running endpoint:
  OTS_ENDPOINT=http://localhost:9000 ots ls

Tables file:
  tables:
    - name: users
      primaryKey:
        - {name: uid, type: string}
        - {name: seq, type: integer}

Run 'ots <command> --help' for more information on a command.`)
}
