// Command deromanize-repl is an interactive session for trying words
// against a loaded profile one at a time, the CLI-ergonomics
// counterpart the teacher's batch-only cmd/server doesn't need: a
// profile author iterating on char_sets and pattern rules wants
// immediate feedback per word, not a batch run per edit.
//
// Usage:
//
//	deromanize-repl --profile hebrew.toml
//
// Each line read is decoded with the front/mid/end orchestrator and its
// ranked candidates printed; "QUIT" or EOF ends the session.
package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/pflag"

	"github.com/ubffm/deromanize"
	"github.com/ubffm/deromanize/internal/profileio"
)

var (
	profilePath = pflag.StringP("profile", "p", "", "path to a TOML profile file (required)")
	frontName   = pflag.String("front", "front", "name of the front Key")
	midName     = pflag.String("mid", "mid", "name of the mid Key")
	endName     = pflag.String("end", "end", "name of the end Key")
)

func main() {
	pflag.Parse()

	if *profilePath == "" {
		fmt.Println("deromanize-repl: --profile is required")
		return
	}

	profile, err := profileio.LoadTOML(*profilePath)
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		return
	}
	engine, err := deromanize.Build(profile)
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		return
	}

	front, err := engine.Key(*frontName)
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		return
	}
	mid, err := engine.Key(*midName)
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		return
	}
	end, err := engine.Key(*endName)
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		return
	}
	orch := deromanize.FrontMidEnd{Front: front, Mid: mid, End: end}

	rl, err := readline.NewEx(&readline.Config{
		Prompt: "deromanize> ",
	})
	if err != nil {
		fmt.Printf("ERROR: create readline config: %s\n", err)
		return
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == io.EOF || err == readline.ErrInterrupt {
			return
		}
		if err != nil {
			fmt.Printf("ERROR: %s\n", err)
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.EqualFold(line, "QUIT") {
			return
		}

		result, err := orch.Decode(line)
		if err != nil {
			fmt.Printf("  no match: %s\n", err)
			continue
		}
		for _, c := range result.Sort().Candidates {
			fmt.Printf("  %-20s weight=%d\n", c.Value, c.Weight)
		}
	}
}
