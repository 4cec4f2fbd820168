/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package cmd

import (
	"github.com/spf13/cobra"

	"jescher/internal/ui"
)

var (
	uiSeed  uint64
	uiRects int
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the sample canvas",
	Long: `Open a window with random rectangles. Drag a rectangle to move it, drag the
background to pan and use the mouse wheel to zoom around the cursor.

The window needs a binary built with -tags fyne.

Examples:
  jescher ui
  jescher ui --rects 8 --seed 42`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return ui.Run(ui.Options{Config: appCfg, Seed: uiSeed, Rects: uiRects})
	},
}

func init() {
	uiCmd.Flags().Uint64Var(&uiSeed, "seed", 1, "seed for the sample rectangles")
	uiCmd.Flags().IntVar(&uiRects, "rects", 3, "number of rectangles added at start")
	rootCmd.AddCommand(uiCmd)
}
