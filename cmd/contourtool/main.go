// contourtool is a headless CLI for synthesizing terrain and inspecting or
// rendering its contour map.
package main

import (
	"fmt"
	"io"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "stats":
		err = cmdStats(args, os.Stdout)
	case "levels", "ls":
		err = cmdLevels(args, os.Stdout)
	case "render":
		err = cmdRender(args, os.Stdout)
	case "probe":
		err = cmdProbe(args, os.Stdout)
	case "config":
		err = cmdConfig(args, os.Stdout)
	case "help", "-h", "--help":
		printUsage(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage(os.Stderr)
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `contourtool - procedural terrain contour utility

Usage:
  contourtool <command> [options]

Commands:
  stats                   Synthesize and print a grid/contour summary
  levels                  List contour heights and segment counts
  render -o <file.png>    Render a plan-view PNG
  probe -x <x> -z <z>     Print the interpolated height at a point
  config [-o <file>]      Write the effective configuration as YAML

Common options:
  -config <file>          YAML config (defaults otherwise)
  -seed, -segments, -size, -max-height, -noise-scale, -min-height,
  -plateau, -interval, -noise

Examples:
  contourtool stats -seed 12.5 -json
  contourtool levels -interval 5
  contourtool render -style fading -o terrain.png -legend
  contourtool probe -x 10 -z -25
  contourtool config -seed 3 -o isoterrain.yaml`)
}
