package cli

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/contribsys/irrigator"
)

type CmdOptions struct {
	PlanPath string
	LogLevel string
	Serve    int
	Dump     bool
}

var (
	StartupInfo = func() {
		log.Println(irrigator.Name, irrigator.Version)
		log.Println(fmt.Sprintf("Copyright © %d Contributed Systems LLC", time.Now().Year()))
	}
)

func ParseArguments() CmdOptions {
	log.SetFlags(0)

	opts, err := parse(os.Args[1:], os.Stderr)
	if err == flag.ErrHelp {
		os.Exit(0)
	}
	if err != nil {
		log.Fatal(err)
	}
	if StartupInfo != nil {
		StartupInfo()
	}
	return opts
}

func parse(args []string, out io.Writer) (CmdOptions, error) {
	defaults := CmdOptions{"irrigator.toml", "", 10, false}

	fs := flag.NewFlagSet(irrigator.Name, flag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = func() { help(out) }
	fs.StringVar(&defaults.PlanPath, "c", "irrigator.toml", "Plan file")
	fs.StringVar(&defaults.LogLevel, "l", "", "Logging level (debug, info, warn, error), overrides the plan")
	fs.IntVar(&defaults.Serve, "n", 10, "Number of items to serve")
	fs.BoolVar(&defaults.Dump, "dump", false, "Dump every region before serving")
	versionPtr := fs.Bool("v", false, "Show version")

	if err := fs.Parse(args); err != nil {
		return defaults, err
	}
	if *versionPtr {
		fmt.Fprintln(out, irrigator.Name, irrigator.Version)
		return defaults, flag.ErrHelp
	}
	if defaults.Serve < 0 {
		return defaults, fmt.Errorf("Invalid item count: %d", defaults.Serve)
	}
	return defaults, nil
}

func help(out io.Writer) {
	fmt.Fprintln(out, "-c [file]\tPlan file describing capacity and regions, default: irrigator.toml")
	fmt.Fprintln(out, "-l [level]\tSet logging level (debug, info, warn, error), default: from plan")
	fmt.Fprintln(out, "-n [count]\tNumber of items to serve, default: 10")
	fmt.Fprintln(out, "-dump\t\tDump every region before serving")
	fmt.Fprintln(out, "-v\t\tShow version")
	fmt.Fprintln(out, "-h\t\tThis help screen")
}
