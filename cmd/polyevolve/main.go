// Command polyevolve approximates an image with semi-transparent polygons
// evolved by a genetic algorithm.
//
//	polyevolve run [options] [image]
//	polyevolve render [options] <snapshot.toml>
package main

import (
	"fmt"
	"os"
)

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: polyevolve <command> [options]")
	fmt.Fprintln(os.Stderr, "\nCommands:")
	fmt.Fprintln(os.Stderr, "  run     evolve polygons toward a target image")
	fmt.Fprintln(os.Stderr, "  render  rasterize a saved snapshot to PNG")
	fmt.Fprintln(os.Stderr, "\nRun 'polyevolve <command> -h' for command options.")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "run":
		err = runCommand(os.Args[2:])
	case "render":
		err = renderCommand(os.Args[2:])
	case "-h", "-help", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
