// Command deromanize-cli decodes romanized words against a profile and
// prints their ranked original-script candidates.
//
// Usage:
//
//	deromanize-cli --profile hebrew.toml [--key base] [--best] word [word...]
//	echo "shalom rosh" | deromanize-cli --profile hebrew.toml --front front --mid mid --end end
//
// With --key, each word is looked up via that single Key's GetAllParts
// and reduced. Without --key, --front/--mid/--end select the
// front/mid/end decode orchestrator instead (both default to "front",
// "mid" and "end" if the flags are omitted and the profile defines
// them).
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/dekarrin/rosed"
	"github.com/spf13/pflag"

	"github.com/ubffm/deromanize"
	"github.com/ubffm/deromanize/internal/profileio"
)

var (
	profilePath = pflag.StringP("profile", "p", "", "path to a TOML profile file (required)")
	keyName     = pflag.StringP("key", "k", "", "decode with a single named Key's GetAllParts instead of front/mid/end")
	frontName   = pflag.String("front", "front", "name of the front Key for orchestrated decode")
	midName     = pflag.String("mid", "mid", "name of the mid Key for orchestrated decode")
	endName     = pflag.String("end", "end", "name of the end Key for orchestrated decode")
	bestOnly    = pflag.BoolP("best", "b", false, "print only the lowest-weight candidate")
)

func main() {
	pflag.Parse()

	if *profilePath == "" {
		fmt.Fprintln(os.Stderr, "deromanize-cli: --profile is required")
		os.Exit(2)
	}

	profile, err := profileio.LoadTOML(*profilePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "deromanize-cli: %v\n", err)
		os.Exit(1)
	}

	engine, err := deromanize.Build(profile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "deromanize-cli: compiling profile: %v\n", err)
		os.Exit(1)
	}

	words := pflag.Args()
	if len(words) == 0 {
		sc := bufio.NewScanner(os.Stdin)
		sc.Split(bufio.ScanWords)
		for sc.Scan() {
			words = append(words, sc.Text())
		}
	}

	decode, err := makeDecoder(engine)
	if err != nil {
		fmt.Fprintf(os.Stderr, "deromanize-cli: %v\n", err)
		os.Exit(1)
	}

	exitCode := 0
	for _, word := range words {
		if word == "" {
			continue
		}
		rl, err := decode(word)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", word, err)
			exitCode = 1
			continue
		}
		printCandidates(word, rl.Sort())
	}
	os.Exit(exitCode)
}

// makeDecoder returns a word -> ReplacementList function, either a
// single Key's GetAllParts-then-reduce or the front/mid/end
// orchestrator, depending on flags.
func makeDecoder(engine *deromanize.Engine) (func(string) (deromanize.ReplacementList, error), error) {
	if *keyName != "" {
		k, err := engine.Key(*keyName)
		if err != nil {
			return nil, err
		}
		return func(word string) (deromanize.ReplacementList, error) {
			parts, err := k.GetAllParts(word)
			if err != nil {
				return deromanize.ReplacementList{}, err
			}
			return deromanize.AddReplacementLists(parts...)
		}, nil
	}

	front, err := engine.Key(*frontName)
	if err != nil {
		return nil, err
	}
	mid, err := engine.Key(*midName)
	if err != nil {
		return nil, err
	}
	end, err := engine.Key(*endName)
	if err != nil {
		return nil, err
	}
	orch := deromanize.FrontMidEnd{Front: front, Mid: mid, End: end}
	return orch.Decode, nil
}

func printCandidates(word string, rl deromanize.ReplacementList) {
	if *bestOnly {
		if best, ok := rl.Best(); ok {
			fmt.Printf("%s\t%s\n", word, best.Value)
		}
		return
	}

	rows := [][]string{{"candidate", "weight"}}
	for _, c := range rl.Candidates {
		rows = append(rows, []string{c.Value, fmt.Sprintf("%d", c.Weight)})
	}
	report := rosed.Edit(fmt.Sprintf("%s:", word)).
		String() + "\n" + rosed.Edit("").
		InsertTableOpts(0, rows, 72, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
	fmt.Println(report)
}
