// Command hash-generator prints bcrypt hashes for seeding users directly
// into the database.
//
//	hash-generator [-cost 12] password [password...]
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/greenrise/greenrise-api/internal/service/auth"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, out io.Writer) int {
	fs := flag.NewFlagSet("hash-generator", flag.ContinueOnError)
	fs.SetOutput(out)
	cost := fs.Int("cost", auth.DefaultBcryptCost, "bcrypt cost factor")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		color.New(color.FgYellow).Fprintln(out, "usage: hash-generator [-cost N] password [password...]")
		return 2
	}

	hasher := auth.NewBcryptHasher(*cost)
	cyan := color.New(color.FgCyan)
	green := color.New(color.FgGreen)

	failed := false
	for _, password := range fs.Args() {
		hash, err := hasher.Hash(password)
		if err != nil {
			color.New(color.FgRed).Fprintf(out, "error hashing %q: %v\n", password, err)
			failed = true
			continue
		}
		cyan.Fprintf(out, "Password: ")
		fmt.Fprintln(out, password)
		green.Fprintf(out, "Hash:     ")
		fmt.Fprintln(out, hash)
		fmt.Fprintln(out)
	}

	if failed {
		return 1
	}
	return 0
}
