/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	applog "jescher/internal/log"
	"jescher/internal/render"
	"jescher/internal/replay"
	"jescher/internal/vector"
)

var (
	replayOut     string
	replayFormat  string
	replayCaption bool
)

var replayCmd = &cobra.Command{
	Use:   "replay <recording.json>",
	Short: "Play a recorded touch stream and render the final frame",
	Long: `Play a JSON recording through the gesture engine on a virtual clock.

The recording lists the surface bounds, the shapes to place and the timed
touch events. The command prints every move callback and the final
transform, and with --out renders the scene under that transform.

Examples:
  jescher replay session.json
  jescher replay session.json --out frame.pdf
  jescher replay session.json --out frame --format png --caption=false`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().StringVarP(&replayOut, "out", "o", "", "write the final frame to this file")
	replayCmd.Flags().StringVar(&replayFormat, "format", "", "png or pdf (default from the file extension, then the config)")
	replayCmd.Flags().BoolVar(&replayCaption, "caption", true, "print the zoom level into raster output")
	rootCmd.AddCommand(replayCmd)
}

func runReplay(cmd *cobra.Command, args []string) error {
	l := applog.WithOperation(applog.WithComponent("cli"), "replay")
	rec, err := replay.Load(args[0])
	if err != nil {
		return err
	}
	res, err := replay.Run(rec, appCfg.GestureConfig())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "events: %d (dropped %d)\n", res.Submitted, res.Dropped())
	for _, n := range res.Notes {
		fmt.Fprintln(out, n)
	}
	off := res.Transform.Offset()
	fmt.Fprintf(out, "scale: %.4f\noffset: %.2f,%.2f\n", res.Transform.Scale(), off.X, off.Y)

	if replayOut == "" {
		return nil
	}
	format, err := outputFormat(replayOut)
	if err != nil {
		return err
	}
	bg, err := vector.ParseHex(appCfg.Render.Background)
	if err != nil {
		return fmt.Errorf("render.background: %w", err)
	}
	opt := render.Options{Format: format, Background: bg}
	if replayCaption {
		opt.Caption = fmt.Sprintf("zoom %.2f", res.Transform.Scale())
	}
	if err := render.WriteFile(replayOut, res.Surface, res.Transform, res.Scene, opt); err != nil {
		return err
	}
	l.Info("frame written", slog.String("path", replayOut), slog.String("format", string(format)))
	fmt.Fprintf(out, "wrote %s\n", replayOut)
	return nil
}

func outputFormat(path string) (render.Format, error) {
	if replayFormat != "" {
		return render.ParseFormat(replayFormat)
	}
	def, err := render.ParseFormat(appCfg.Render.Format)
	if err != nil {
		return "", fmt.Errorf("render.format: %w", err)
	}
	return render.FormatFromPath(path, def), nil
}
