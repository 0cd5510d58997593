package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/recera/netsketch/internal/cache"
	"github.com/recera/netsketch/internal/preview"
	"github.com/recera/netsketch/pkg/topology"
)

func newRenderCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "render <diagram.json>",
		Short: "Render an exported diagram to SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read diagram: %w", err)
			}

			var renderCache *cache.Cache
			if !noCache {
				renderCache, err = cache.New(cache.DefaultConfig())
				if err != nil {
					return err
				}
			}

			key := cache.Key(raw)
			var svg []byte
			if renderCache != nil {
				if hit, ok := renderCache.Get(key); ok {
					svg = hit
				}
			}
			if svg == nil {
				doc, err := topology.ParseDocument(strings.NewReader(string(raw)))
				if err != nil {
					return err
				}
				svg = []byte(preview.RenderSVG(doc, nil))
				if renderCache != nil {
					if err := renderCache.Put(key, svg); err != nil {
						return err
					}
				}
			}

			if output == "" || output == "-" {
				_, err = os.Stdout.Write(svg)
				return err
			}
			if err := os.WriteFile(output, svg, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			fmt.Printf("✅ Rendered %s -> %s\n", args[0], output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the render cache")

	return cmd
}
