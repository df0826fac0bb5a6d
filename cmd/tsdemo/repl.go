/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"prime-tsengine-go/config"
)

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactive shell for pushing prices and inspecting the indicator DAG",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, reg, err := loadConfig()
			if err != nil {
				return err
			}
			p, err := newPipeline(cfg, reg)
			if err != nil {
				return err
			}
			runRepl(p, cfg)
			return nil
		},
	}
}

func runRepl(p *pipeline, cfg config.Config) {
	completer := readline.NewPrefixCompleter(
		readline.PcItem("push"),
		readline.PcItem("rows"),
		readline.PcItem("tail"),
		readline.PcItem("help"),
		readline.PcItem("exit"),
	)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "tsdemo> ",
		HistoryFile:     cfg.HistoryFile,
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		log.Printf("tsdemo: failed to create readline: %v", err)
		return
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			break
		}
		parts := strings.Fields(strings.TrimSpace(line))
		if len(parts) == 0 {
			continue
		}

		switch strings.ToLower(parts[0]) {
		case "push":
			handlePush(p, parts)
		case "rows":
			handleRows(p, -1)
		case "tail":
			n := 10
			if len(parts) > 1 {
				if v, err := strconv.Atoi(parts[1]); err == nil {
					n = v
				}
			}
			handleRows(p, n)
		case "help":
			displayReplHelp()
		case "exit":
			return
		default:
			fmt.Println("Unknown command. Type 'help' for available commands.")
		}
	}
}

func handlePush(p *pipeline, parts []string) {
	if len(parts) != 2 {
		fmt.Println("Usage: push <price>")
		return
	}
	price, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		fmt.Printf("invalid price %q: %v\n", parts[1], err)
		return
	}
	if err := p.push(price); err != nil {
		fmt.Printf("push failed: %v\n", err)
	}
}

func handleRows(p *pipeline, tail int) {
	rows, err := p.rows()
	if err != nil {
		fmt.Printf("rows failed: %v\n", err)
		return
	}
	if tail >= 0 && tail < len(rows) {
		rows = rows[len(rows)-tail:]
	}
	printRows(rows)
}

func displayReplHelp() {
	fmt.Print(`Commands:
  push <price>   - push one price sample onto the source
  rows           - print every row computed so far
  tail [N]       - print the last N rows (default 10)
  help           - show this help message
  exit           - quit

`)
}
