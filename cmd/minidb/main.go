package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"go.uber.org/zap"

	"github.com/thisizaro/MiniDB/internal/minidb"
	"github.com/thisizaro/MiniDB/internal/parser"
	"github.com/thisizaro/MiniDB/internal/pkg/logging"
	"github.com/thisizaro/MiniDB/internal/pkg/util"
)

const (
	cliName string = "minidb"
)

func printPrompt() {
	fmt.Print(cliName, "> ")
}

func sanitizeReplInput(input string) string {
	return strings.TrimSpace(input)
}

type metaCommand int

const (
	Unknown metaCommand = iota + 1
	Help
	Exit
	ListTables
	PoolStats
)

func isMetaCommand(inputBuffer string) bool {
	return len(inputBuffer) > 0 && inputBuffer[:1] == "."
}

func doMetaCommand(inputBuffer string) metaCommand {
	switch strings.ToLower(inputBuffer) {
	case "help":
		return Help
	case "exit":
		return Exit
	case "tables":
		return ListTables
	case "stats":
		return PoolStats
	default:
		return Unknown
	}
}

const defaultDbName = "db"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logConf := logging.DefaultConfig()

	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "info"
	}

	l, err := logging.ParseLevel(level)
	if err != nil {
		panic(err)
	}
	logConf.Level = zap.NewAtomicLevelAt(l)

	logger, err := logConf.Build()
	if err != nil {
		panic(err)
	}
	defer logger.Sync() // flushes buffer, if any

	aDatabase, err := minidb.NewDatabase(logger, defaultDbName, parser.New())
	if err != nil {
		panic(err)
	}

	wg := new(sync.WaitGroup)
	wg.Add(1)

	replDone := make(chan struct{})

	go func() {
		defer wg.Done()
		defer close(replDone)
		reader := bufio.NewScanner(os.Stdin)
		printPrompt()

		// REPL (Read-eval-print loop) start
		for reader.Scan() {
			if ctx.Err() != nil {
				break
			}

			inputBuffer := sanitizeReplInput(reader.Text())
			if isMetaCommand(inputBuffer) {
				switch doMetaCommand(inputBuffer[1:]) {
				case Help:
					fmt.Println(".help    - Show available commands")
					fmt.Println(".exit    - Closes program")
					fmt.Println(".tables  - List all tables in the current database")
					fmt.Println(".stats   - Show buffer pool statistics")
				case Exit:
					// Return exits with code 0 by default, os.Exit(0)
					// would exit immediately without any defers
					return
				case ListTables:
					for _, table := range aDatabase.ListTableNames() {
						fmt.Println(table)
					}
				case PoolStats:
					stats := aDatabase.BufferPool().Stats()
					fmt.Printf("capacity:     %d\n", stats.Capacity)
					fmt.Printf("resident:     %d\n", stats.Resident)
					fmt.Printf("page size:    %d\n", stats.PageSize)
					fmt.Printf("total memory: %d\n", stats.TotalMemory)
					fmt.Printf("dirty pages:  %d\n", stats.DirtyPages)
					fmt.Printf("pinned pages: %d\n", stats.PinnedPages)
					fmt.Printf("hit rate:     %.2f\n", stats.HitRate)
				case Unknown:
					fmt.Printf("Unrecognized meta command: %s\n", inputBuffer)
				}
			} else if inputBuffer != "" {
				stmt, err := aDatabase.PrepareStatement(ctx, inputBuffer)
				if err != nil {
					// Parser logs error internally
				} else {
					aResult, err := aDatabase.ExecuteStatement(ctx, stmt)
					if err != nil {
						fmt.Printf("Error executing statement: %s\n", err)
					} else if stmt.Kind == minidb.Insert || stmt.Kind == minidb.Update || stmt.Kind == minidb.Delete {
						fmt.Printf("Rows affected: %d\n", aResult.RowsAffected)
					} else if stmt.Kind == minidb.Select {
						util.PrintTableHeader(os.Stdout, aResult.Columns)
						for _, aRow := range aResult.Rows {
							util.PrintTableRow(os.Stdout, aRow.Values)
						}
						util.PrintTableEnd(os.Stdout, aResult.Columns)
					}
				}
			}
			printPrompt()
		}
		// Print an additional line if we encountered an EOF character
		fmt.Println()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigChan:
	case <-replDone:
	}

	if err := aDatabase.Close(); err != nil {
		fmt.Printf("error closing database: %s\n", err)
	}

	cancel()

	wg.Wait()
}
