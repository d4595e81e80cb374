package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/acksell/otskit/tablestore/otssdk"
	"github.com/sirupsen/logrus"
)

const requestTimeout = 10 * time.Second

func newClient(cfg *Config) *otssdk.Client {
	logger := newLogger(cfg)
	opts := []otssdk.Option{otssdk.WithErrorLogger(logger)}
	if logger.IsLevelEnabled(logrus.DebugLevel) {
		opts = append(opts, otssdk.WithDebugLogger(logger))
	}
	return otssdk.New(otssdk.NewHTTPTransport(cfg.Endpoint, cfg.Instance), opts...)
}

func inspectFlags(name, usage string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	registerFlags(fs, "endpoint", "instance", "log-level", "log-format")
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		fs.PrintDefaults()
	}
	return fs
}

func runList(args []string) error {
	fs := inspectFlags("ls", `Usage: ots ls [flags]

List the tables of an endpoint.

Flags:
`)
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := loadConfig(fs, ".")
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	return listTables(ctx, newClient(cfg), os.Stdout)
}

func runDescribe(args []string) error {
	fs := inspectFlags("describe", `Usage: ots describe [flags] <table>

Show a table's primary key schema and reserved throughput.

Flags:
`)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("expected one table name, got %d", fs.NArg())
	}
	cfg, err := loadConfig(fs, ".")
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	return describeTable(ctx, newClient(cfg), fs.Arg(0), os.Stdout)
}

func listTables(ctx context.Context, api otssdk.API, w io.Writer) error {
	resp, err := api.ListTable(ctx, &otssdk.ListTableRequest{})
	if err != nil {
		return err
	}
	names := append([]string(nil), resp.TableNames...)
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintln(w, name)
	}
	return nil
}

func describeTable(ctx context.Context, api otssdk.API, name string, w io.Writer) error {
	resp, err := api.DescribeTable(ctx, &otssdk.DescribeTableRequest{TableName: name})
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Table:\t%s\n", resp.TableMeta.TableName)
	for i, col := range resp.TableMeta.PrimaryKeySchema {
		fmt.Fprintf(tw, "PK %d:\t%s %s\n", i, col.Name, col.Type)
	}

	details := resp.ReservedThroughputDetails
	fmt.Fprintf(tw, "Read CU:\t%d\n", details.CapacityUnit.Read.OrElse(0))
	fmt.Fprintf(tw, "Write CU:\t%d\n", details.CapacityUnit.Write.OrElse(0))
	fmt.Fprintf(tw, "Last increase:\t%s\n", formatUnix(details.LastIncreaseTime))
	if last, ok := details.LastDecreaseTime.Get(); ok {
		fmt.Fprintf(tw, "Last decrease:\t%s\n", formatUnix(last))
	}
	fmt.Fprintf(tw, "Decreases today:\t%d\n", details.NumberOfDecreasesToday)
	return tw.Flush()
}

func formatUnix(sec int64) string {
	return time.Unix(sec, 0).UTC().Format(time.RFC3339)
}
