// Command profstat reads a pprof profile (e.g. one written by
// cmd/threefactor's -profile flag) and prints per-function totals for its
// first sample type, sorted descending — a minimal stand-in for `go tool
// pprof -top`, grounded on the teacher's use of runtime/pprof in its own
// example programs and on google/pprof/profile's documented Profile/Sample/
// Function shape.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/google/pprof/profile"
)

func check(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, "profstat:", err)
		os.Exit(1)
	}
}

type funcTotal struct {
	name  string
	value int64
}

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: profstat <profile.pprof>")
		os.Exit(2)
	}

	f, err := os.Open(flag.Arg(0))
	check(err)
	defer f.Close()

	prof, err := profile.Parse(f)
	check(err)
	check(prof.CheckValid())

	if len(prof.SampleType) == 0 || len(prof.Sample) == 0 {
		fmt.Println("profile has no samples")
		return
	}

	valueIdx := 0
	fmt.Printf("sample type: %s (%s), %d samples, duration %s\n",
		prof.SampleType[valueIdx].Type, prof.SampleType[valueIdx].Unit,
		len(prof.Sample), durationString(prof.DurationNanos))

	totals := map[string]int64{}
	for _, s := range prof.Sample {
		v := s.Value[valueIdx]
		for _, loc := range s.Location {
			for _, line := range loc.Line {
				if line.Function == nil {
					continue
				}
				totals[line.Function.Name] += v
			}
		}
	}

	ranked := make([]funcTotal, 0, len(totals))
	for name, v := range totals {
		ranked = append(ranked, funcTotal{name: name, value: v})
	}
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].value > ranked[j].value })

	for i, ft := range ranked {
		if i >= 20 {
			fmt.Printf("... %d more functions omitted\n", len(ranked)-20)
			break
		}
		fmt.Printf("%12d  %s\n", ft.value, ft.name)
	}
}

func durationString(nanos int64) string {
	const nsPerSec = 1e9
	return fmt.Sprintf("%.3fs", float64(nanos)/nsPerSec)
}
