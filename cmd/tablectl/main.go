/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/suparena/tablestore"
	"github.com/suparena/tablestore/datastore/ddb"
	storeerrors "github.com/suparena/tablestore/errors"
	"github.com/suparena/tablestore/storagemodels"
)

var (
	versionFlag = flag.Bool("version", false, "Show version information")
	vFlag       = flag.Bool("v", false, "Show version information (short)")
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: tablectl <command> [flags]

Commands:
  dump    -table T -out f.json             dump a table to a JSON file
  load    -table T -config cfg.json -in f  load a JSON file into a table
  count   -table T                         print the table's item count
  exists  -table T                         report whether the table exists

The DynamoDB endpoint is taken from %s; a .env file in the
working directory is loaded first.
`, ddb.EndpointEnvVar)
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if *versionFlag || *vFlag {
		info := tablestore.GetVersionInfo()
		fmt.Printf("tablectl version %s\n", info.Version)
		fmt.Printf("Git commit: %s\n", info.GitCommit)
		fmt.Printf("Build date: %s\n", info.BuildDate)
		fmt.Printf("Go version: %s\n", info.GoVersion)
		os.Exit(0)
	}

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	_ = godotenv.Load()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	ctx := context.Background()
	client, err := ddb.NewClient(ctx, ddb.ClientOptions{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build DynamoDB client")
	}

	var cmdErr error
	switch flag.Arg(0) {
	case "dump":
		cmdErr = runDump(ctx, client, log, flag.Args()[1:])
	case "load":
		cmdErr = runLoad(ctx, client, log, flag.Args()[1:])
	case "count":
		cmdErr = runCount(ctx, client, flag.Args()[1:])
	case "exists":
		cmdErr = runExists(ctx, client, flag.Args()[1:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", flag.Arg(0))
		usage()
		os.Exit(2)
	}

	if cmdErr != nil {
		log.Fatal().Err(cmdErr).Str("command", flag.Arg(0)).Msg("command failed")
	}
}

func runDump(ctx context.Context, client ddb.DynamoDBAPI, log zerolog.Logger, args []string) error {
	fs := flag.NewFlagSet("dump", flag.ExitOnError)
	table := fs.String("table", "", "table name (required)")
	out := fs.String("out", "", "output file (required)")
	fs.Parse(args)

	if *table == "" || *out == "" {
		fs.Usage()
		return fmt.Errorf("dump requires -table and -out")
	}
	return ddb.DumpTableToJSON(ctx, client, *table, *out, ddb.WithLogger(log))
}

func runLoad(ctx context.Context, client ddb.DynamoDBAPI, log zerolog.Logger, args []string) error {
	fs := flag.NewFlagSet("load", flag.ExitOnError)
	table := fs.String("table", "", "table name override (defaults to the config's TableName)")
	configPath := fs.String("config", "", "table config file, JSON or YAML (required)")
	in := fs.String("in", "", "input file (required)")
	fs.Parse(args)

	if *configPath == "" || *in == "" {
		fs.Usage()
		return fmt.Errorf("load requires -config and -in")
	}

	cfg, err := storagemodels.LoadTableConfigFile(*configPath)
	if err != nil {
		return err
	}
	if *table != "" {
		cfg.TableName = *table
	}

	report, err := ddb.LoadTableFromJSON(ctx, client, *cfg, *in, ddb.WithLogger(log))
	if err != nil {
		return err
	}
	fmt.Printf("loaded %d items into %s (before: %d, after: %d)\n",
		report.ItemsLoaded, cfg.TableName, report.ItemsBefore, report.ItemsAfter)
	return nil
}

func runCount(ctx context.Context, client ddb.DynamoDBAPI, args []string) error {
	fs := flag.NewFlagSet("count", flag.ExitOnError)
	table := fs.String("table", "", "table name (required)")
	fs.Parse(args)

	if *table == "" {
		fs.Usage()
		return fmt.Errorf("count requires -table")
	}

	cfg, err := ddb.DescribeTableConfig(ctx, client, *table)
	if err != nil {
		return err
	}
	h, err := ddb.NewTableHandle(ctx, client, *cfg)
	if err != nil {
		return err
	}
	n, err := h.Count(ctx)
	if err != nil {
		return err
	}
	fmt.Println(n)
	return nil
}

func runExists(ctx context.Context, client ddb.DynamoDBAPI, args []string) error {
	fs := flag.NewFlagSet("exists", flag.ExitOnError)
	table := fs.String("table", "", "table name (required)")
	fs.Parse(args)

	if *table == "" {
		fs.Usage()
		return fmt.Errorf("exists requires -table")
	}

	_, err := ddb.DescribeTableConfig(ctx, client, *table)
	if err == nil {
		fmt.Println("true")
		return nil
	}
	if storeerrors.IsNotFound(err) {
		fmt.Println("false")
		return nil
	}
	return err
}
