package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	typst2rsx "github.com/Etase/typst-2-rsx"
	"github.com/djherbis/atime"
	"github.com/matryer/try"
	"github.com/tdewolff/argp"
)

// Version is the current typst2rsx version.
var Version = "built from source"

var (
	quiet              bool
	verbose            int
	version            bool
	watch              bool
	preserveTimestamps bool
	typstBinary        string
)

// Loggers.
var (
	Error   *log.Logger
	Warning *log.Logger
	Info    *log.Logger
)

func main() {
	// os.Exit doesn't execute pending defer calls, this is fixed by encapsulating run()
	os.Exit(run())
}

func run() int {
	var inputs []string
	var output string

	f := argp.New("typst2rsx")
	f.AddRest(&inputs, "inputs", "Input .typ or .svg files, leave blank to read SVG from stdin")
	f.AddOpt(&output, "o", "output", nil, "Output file or directory, leave blank to use stdout")
	f.AddOpt(&typstBinary, "", "typst", "typst", "Name or path of the typst executable")
	f.AddOpt(&quiet, "q", "quiet", false, "Quiet mode to suppress all output")
	f.AddOpt(argp.Count{I: &verbose}, "v", "verbose", nil, "Verbose mode, set twice for more verbosity")
	f.AddOpt(&watch, "w", "watch", false, "Watch input files and convert upon changes")
	f.AddOpt(&preserveTimestamps, "p", "preserve-timestamps", false, "Preserve input file timestamps on output files")
	f.AddOpt(&version, "", "version", false, "Version")
	f.Parse()

	if version {
		if !quiet {
			fmt.Printf("typst2rsx %s\n", Version)
		}
		return 0
	}

	Error = log.New(io.Discard, "", 0)
	Warning = log.New(io.Discard, "", 0)
	Info = log.New(io.Discard, "", 0)
	if !quiet {
		Error = log.New(os.Stderr, "ERROR: ", 0)
		if 0 < verbose {
			Warning = log.New(os.Stderr, "WARNING: ", 0)
		}
		if 1 < verbose {
			Info = log.New(os.Stderr, "INFO: ", 0)
		}
	}

	typst2rsx.TypstBinary = typstBinary

	if len(inputs) == 1 && inputs[0] == "-" {
		inputs = inputs[:0] // stdin
	}
	if output == "-" {
		output = "" // stdout
	}
	useStdin := len(inputs) == 0

	if (useStdin || output == "") && watch {
		Error.Println("--watch doesn't work with stdin and stdout, specify input and output")
		return 1
	}
	if 1 < len(inputs) && output != "" && !IsDir(output) {
		Error.Println("output must be a directory when converting multiple inputs")
		return 1
	}

	start := time.Now()

	fails := 0
	if useStdin {
		if !convert("", output) {
			fails++
		}
	}
	for _, input := range inputs {
		if !convert(input, output) {
			fails++
		}
	}

	if watch {
		watcher, err := NewWatcher()
		if err != nil {
			Error.Println(err)
			return 1
		}
		defer watcher.Close()

		for _, input := range inputs {
			if err := watcher.AddPath(input); err != nil {
				Error.Println(err)
				return 1
			}
		}

		changes := watcher.Run()
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt)
		for changes != nil {
			select {
			case <-c:
				watcher.Close()
			case file, ok := <-changes:
				if !ok {
					changes = nil
					break
				}
				convert(file, output)
			}
		}
	}

	if !watch {
		Info.Println("finished in", time.Since(start))
	}
	if 0 < fails {
		return 1
	}
	return 0
}

// convert runs one conversion from input to output, which may be a directory.
// Blank input reads SVG from stdin, blank output writes to stdout.
func convert(input, output string) bool {
	dst := outputPath(input, output)

	start := time.Now()

	var res string
	var err error
	if input == "" {
		res, err = typst2rsx.ConvertSVG(os.Stdin)
	} else if filepath.Ext(input) == ".typ" {
		// transient process-spawn failures are the one retryable case
		err = try.Do(func(attempt int) (bool, error) {
			var cerr error
			res, cerr = typst2rsx.ToRSX(context.Background(), input)
			var terr *typst2rsx.Error
			retry := errors.As(cerr, &terr) && terr.Stage == typst2rsx.StageCompile
			return attempt < 3 && retry, cerr
		})
	} else {
		res, err = typst2rsx.ConvertFile(input)
	}
	if err != nil {
		Error.Println(err)
		return false
	}

	w, err := openOutputFile(dst)
	if err != nil {
		Error.Println(err)
		return false
	}
	_, err = io.WriteString(w, res)
	if w != os.Stdout {
		if cerr := w.Close(); err == nil {
			err = cerr
		}
	}
	if err != nil {
		Error.Println(err)
		return false
	}

	if preserveTimestamps && input != "" && dst != "" {
		preserveAttributes(input, dst)
	}

	srcName := input
	if srcName == "" {
		srcName = "stdin"
	}
	dstName := dst
	if dstName == "" {
		dstName = "stdout"
	}
	Info.Println("converted", srcName, "to", dstName, "in", time.Since(start))
	return true
}

// outputPath returns the destination file for input. When output is a
// directory the input's base name gets an .rsx extension; stdin input falls
// back to the fixed name stdin.rsx.
func outputPath(input, output string) string {
	if output == "" || !IsDir(output) {
		return output
	}
	base := "stdin"
	if input != "" {
		base = filepath.Base(input)
	}
	return filepath.Join(output, strings.TrimSuffix(base, filepath.Ext(base))+".rsx")
}

// preserveAttributes copies the access and modification times of src to dst.
func preserveAttributes(src, dst string) {
	srcInfo, err := os.Stat(src)
	if err != nil {
		Warning.Println(err)
		return
	}
	if err := os.Chtimes(dst, atime.Get(srcInfo), srcInfo.ModTime()); err != nil {
		Warning.Println(err)
	}
}
