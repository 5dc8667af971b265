// Command jmtcli is a small harness exercising load and export outside
// a full chrome: flag-parsed subcommands, errors to stderr, os.Exit(1)
// on failure.
package main

import (
	"flag"
	"fmt"
	"os"

	"jmt/persistence"
	"jmt/render"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "validate":
		runValidate(os.Args[2:])
	case "render":
		runRender(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: jmtcli <validate|render> [flags]\n")
}

// runValidate loads a .jmt file and reports its element counts, exercising
// the same persistence.Load path the chrome's open-file action calls.
func runValidate(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	input := fs.String("i", "", "input .jmt file")
	fs.Parse(args)

	if *input == "" {
		fmt.Fprintln(os.Stderr, "Error: input file required (-i)")
		fs.Usage()
		os.Exit(1)
	}

	data, err := os.ReadFile(*input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input file: %v\n", err)
		os.Exit(1)
	}

	d, err := persistence.Load(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading diagram: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%s: %d states, %d pseudo-states, %d connections, %d aux entities\n",
		d.Name, len(d.States), len(d.PseudoStates), len(d.Connections), len(d.Aux))
}

// runRender loads a .jmt file and rasterizes it to a PNG file.
func runRender(args []string) {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	input := fs.String("i", "", "input .jmt file")
	output := fs.String("o", "", "output PNG file")
	zoom := fs.Float64("zoom", 1.0, "zoom factor")
	autocrop := fs.Bool("autocrop", true, "crop to tight content bounds plus margin")
	margin := fs.Int("margin", 20, "autocrop margin, in diagram units")
	fs.Parse(args)

	if *input == "" || *output == "" {
		fmt.Fprintln(os.Stderr, "Error: input (-i) and output (-o) files required")
		fs.Usage()
		os.Exit(1)
	}

	data, err := os.ReadFile(*input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input file: %v\n", err)
		os.Exit(1)
	}

	d, err := persistence.Load(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading diagram: %v\n", err)
		os.Exit(1)
	}

	img := render.Rasterize(d, *zoom, *autocrop, *margin)

	f, err := os.Create(*output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	if err := render.EncodePNG(img, f); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding PNG: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Rendered %s to %s\n", *input, *output)
}
