package main

import (
	"flag"
	"fmt"
	"os"

	gmsf "github.com/randomwolf06/gmsf-to-midi"
	"github.com/randomwolf06/gmsf-to-midi/version"
)

func main() {
	configPath := flag.String("c", "config.json", "Configuration file mapping instrument slots and grid symbols. May be .json or .yml.")
	outDir := flag.String("o", "", "Directory where to write the converted files. The directory and its parents are created if needed. By default, each .mid is placed next to its input.")
	sjis := flag.Bool("sjis", false, "Encode track names as Shift-JIS for players that do not understand Unicode meta text.")
	help := flag.Bool("h", false, "Show help.")
	versionFlag := flag.Bool("v", false, "Print version.")
	flag.Usage = printUsage
	flag.Parse()
	if *versionFlag {
		fmt.Println(version.VersionOrHash)
		os.Exit(0)
	}
	if flag.NArg() == 0 || *help {
		flag.Usage()
		os.Exit(0)
	}
	cfg, err := gmsf.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load configuration %v: %v\n", *configPath, err)
		os.Exit(1)
	}
	if *outDir != "" {
		if err := os.MkdirAll(*outDir, os.ModePerm); err != nil {
			fmt.Fprintf(os.Stderr, "could not create output directory %v: %v\n", *outDir, err)
			os.Exit(1)
		}
	}
	opts := gmsf.Options{ShiftJISNames: *sjis}
	retval := 0
	for _, path := range flag.Args() {
		warnings, err := gmsf.ConvertFile(path, gmsf.OutputPath(path, *outDir), cfg, opts)
		for _, warning := range warnings {
			fmt.Fprintf(os.Stderr, "%v: %v\n", path, warning)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not convert %v: %v\n", path, err)
			retval = 1
		}
	}
	os.Exit(retval)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "GMSF to MIDI converter. Inputs grid music sheets, outputs format 1 .mid files.\nUsage: %s [flags] [path ...]\n", os.Args[0])
	flag.PrintDefaults()
}
