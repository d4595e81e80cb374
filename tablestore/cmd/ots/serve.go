package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/acksell/otskit/tablestore/otsserver"
)

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	registerFlags(fs, "port", "data-dir", "tables", "log-level", "log-format")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: ots serve [flags]

Run the table store emulator over HTTP. Without --data-dir the store lives in
memory and is lost on exit. Tables from --tables are created at startup unless
they already exist.

Flags:
`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(fs, ".")
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	tables, err := loadTables(cfg.TablesFile)
	if err != nil {
		return err
	}

	server, err := otsserver.NewServer(otsserver.ServerConfig{
		Port:    cfg.Port,
		DataDir: cfg.DataDir,
		Tables:  tables,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return server.Run(ctx)
}
