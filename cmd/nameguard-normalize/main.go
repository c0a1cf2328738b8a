package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/stake-plus/nameguard/src/names"
)

var (
	verboseFlag = flag.Bool("v", false, "Print the raw name next to its canonical form")
	compareFlag = flag.String("compare", "", "Report whether each name collides with this protected name")
)

func main() {
	log.SetFlags(0)
	flag.Parse()

	var err error
	if flag.NArg() > 0 {
		for _, arg := range flag.Args() {
			printName(os.Stdout, arg, *verboseFlag, *compareFlag)
		}
	} else {
		err = normalizeLines(os.Stdin, os.Stdout, *verboseFlag, *compareFlag)
	}
	if err != nil {
		log.Fatalf("read stdin: %v", err)
	}
}

func normalizeLines(r io.Reader, w io.Writer, verbose bool, compare string) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		printName(w, sc.Text(), verbose, compare)
	}
	return sc.Err()
}

func printName(w io.Writer, raw string, verbose bool, compare string) {
	c := names.NewCanonical(raw)
	out := c.Form
	if verbose {
		out = strconv.Quote(c.Raw) + "\t" + strconv.Quote(c.Form)
	}
	if compare != "" {
		protected := names.Normalize(compare)
		match := !c.Empty() && c.Form == protected
		out += "\t" + strconv.FormatBool(match)
	}
	fmt.Fprintln(w, out)
}
