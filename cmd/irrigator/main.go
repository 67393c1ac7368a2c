package main

import (
	"fmt"
	"log"

	"github.com/contribsys/irrigator/cli"
	"github.com/contribsys/irrigator/crop"
	"github.com/contribsys/irrigator/util"
)

func main() {
	opts := cli.ParseArguments()

	plan, err := cli.LoadPlan(opts.PlanPath)
	if err != nil {
		log.Fatal(err)
	}

	level := plan.LogLevel
	if opts.LogLevel != "" {
		level = opts.LogLevel
	}
	logger, err := util.InitLogger(level)
	if err != nil {
		log.Fatal(err)
	}

	if opts.Dump {
		for _, rp := range plan.Regions {
			r, err := rp.Region()
			if err != nil {
				logger.Fatalf("Region %s: %v", rp.Name, err)
			}
			fmt.Printf("%s %s\n", rp.Name, r.Dump())
		}
	}

	irr, err := plan.Build(logger)
	if err != nil {
		logger.Fatalf("Unable to build irrigator: %v", err)
	}
	if opts.Dump {
		fmt.Println(irr.Dump())
	}

	for i := 0; i < opts.Serve; i++ {
		c, ok := irr.NextItem()
		if !ok {
			logger.Infof("All regions exhausted after %d crops", i)
			return
		}
		fmt.Printf("[%d/%d] %v\n", crop.Moisture.Priority(c), crop.Temperature.Priority(c), c)
	}
	logger.Infof("Served %d crops, %d regions still waiting", opts.Serve, irr.Len())
}
