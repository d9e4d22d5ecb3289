// Command alr prints the reports of a personal ledger.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/etnz/alere/cmd"
)

func main() {
	completion().Complete("alr")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	if err := cmd.LoadEnv(flag.CommandLine); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(int(subcommands.ExitUsageError))
	}
	flag.Parse()

	if name := flag.Arg(0); name != "" && !registered(name) {
		if found, code := cmd.RunExtension(name, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}

func registered(name string) bool {
	switch name {
	case "help", "flags", "commands":
		return true
	}
	for _, c := range cmd.Commands {
		if c.Name() == name {
			return true
		}
	}
	return false
}

// completion describes the command line for shell completion: the global
// flags and, for each subcommand, its own flags.
func completion() *complete.Command {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: map[string]complete.Predictor{},
	}
	flag.VisitAll(func(f *flag.Flag) { root.Flags[f.Name] = predictor(f.Name) })
	for _, c := range cmd.Commands {
		fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(fs)
		sub := &complete.Command{Flags: map[string]complete.Predictor{}}
		fs.VisitAll(func(f *flag.Flag) { sub.Flags[f.Name] = predictor(f.Name) })
		root.Sub[c.Name()] = sub
	}
	return root
}

func predictor(name string) complete.Predictor {
	switch name {
	case "db":
		return predict.Files("*.sqlite*")
	case "period":
		return predict.Set{"day", "week", "month", "quarter", "year"}
	case "occurrences":
		return predict.Set{"none", "default", "all"}
	case "v", "json", "income", "expense", "unrealized":
		return predict.Nothing
	default:
		return predict.Something
	}
}
