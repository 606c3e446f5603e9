/*

slippi-dump parses a Slippi replay file and prints a JSON summary of its
Start settings, End result, and per-frame row counts.

*/
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	slippi "github.com/fizzwick/slippi-columnar"
)

const (
	exitCodeMissingArguments    = 1
	exitCodeFailedToParseReplay = 2
)

var (
	skipFrames = flag.Bool("skip-frames", false, "decode Start/End/Metadata only, skipping the frame event stream")
	debugDir   = flag.String("debug-dir", "", "write every event's raw payload under debug-dir/<code>/<n>")
	indent     = flag.Bool("indent", true, "use indentation when formatting output")
)

func main() {
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(exitCodeMissingArguments)
	}

	game, err := slippi.DecodeFile(args[0], &slippi.Options{
		SkipFrames: *skipFrames,
		DebugDir:   *debugDir,
	})
	if err != nil {
		fmt.Printf("Failed to parse replay: %v\n", err)
		os.Exit(exitCodeFailedToParseReplay)
	}

	summary := newSummary(game)

	enc := json.NewEncoder(os.Stdout)
	if *indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(summary); err != nil {
		fmt.Printf("Failed to encode output: %v\n", err)
	}
}

// summary is a flattened, JSON-friendly view of a Game. It intentionally
// omits the frame columns themselves (those are the library's payload,
// not something a CLI dump should inline) and reports only their shape.
type summary struct {
	Start      *slippi.Start `json:"start"`
	End        *slippi.End   `json:"end,omitempty"`
	FrameCount int           `json:"frameCount"`
	HasGecko   bool          `json:"hasGeckoCodes"`
	Metadata   interface{}   `json:"metadata,omitempty"`
}

func newSummary(g *slippi.Game) summary {
	s := summary{
		Start:    g.Start,
		End:      g.End,
		HasGecko: g.GeckoCodes != nil,
		Metadata: g.Metadata,
	}
	if g.Frames != nil {
		s.FrameCount = g.Frames.Len()
	}
	return s
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Printf("\t%s [FLAGS] replay.slp\n", os.Args[0])
	fmt.Println("\tRun with '-h' to see a list of available flags.")
}
