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
	"math/rand"
	"os"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	var ticks int
	var seed int64
	var start int64

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Feed a synthetic random-walk price series through the pipeline and print it",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, reg, err := loadConfig()
			if err != nil {
				return err
			}
			p, err := newPipeline(cfg, reg)
			if err != nil {
				return err
			}

			rng := rand.New(rand.NewSource(seed))
			price := start
			for i := 0; i < ticks; i++ {
				price += rng.Int63n(5) - 2
				if price < 1 {
					price = 1
				}
				if err := p.push(price); err != nil {
					return fmt.Errorf("tsdemo run: pushing tick %d: %w", i, err)
				}
			}

			rows, err := p.rows()
			if err != nil {
				return err
			}
			printRows(rows)
			return nil
		},
	}
	cmd.Flags().IntVar(&ticks, "ticks", 30, "number of synthetic price ticks to feed")
	cmd.Flags().Int64Var(&seed, "seed", 1, "random walk seed")
	cmd.Flags().Int64Var(&start, "start", 100, "starting price")
	return cmd
}

func printRows(rows []pipelineRow) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Index", "Stamp", "Price", "MovingMean", "Slope"})
	for _, r := range rows {
		slopeCell := fmt.Sprintf("%.4f", r.Slope)
		if r.Slope > 0 {
			slopeCell = color.GreenString(slopeCell)
		} else if r.Slope < 0 {
			slopeCell = color.RedString(slopeCell)
		}
		t.AppendRow(table.Row{
			r.Index,
			r.Stamp.Format("15:04:05"),
			r.Price,
			fmt.Sprintf("%.4f", r.Mean),
			slopeCell,
		})
	}
	t.Render()
}
