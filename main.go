package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/devlynnx/solidity/smtlib"
	"github.com/devlynnx/solidity/solver"
)

func main() {
	interactive := flag.Bool("i", false, "start the interactive scratchpad")
	dump := flag.Bool("d", false, "print the demo query instead of running it")
	configFile := flag.String("c", "", "solver backend config (YAML)")
	flag.Parse()

	config := solver.DefaultConfig()
	if *configFile != "" {
		loaded, err := solver.LoadConfig(*configFile)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		config = loaded
	}

	if *interactive {
		repl(config)
		return
	}
	demo(config, *dump)
}

func demo(config solver.Config, dump bool) {
	enc := smtlib.NewEncoder(config.Timeout)
	d := solver.NewDispatcher(enc, solver.Command(time.Minute), config)

	intSort := &smtlib.IntSort{Signed: true}
	enc.DeclareVariable("x", intSort)
	enc.DeclareVariable("y", intSort)
	enc.AddAssertion(smtlib.Expression{
		Name:      ">",
		Arguments: []smtlib.Expression{{Name: "x"}, {Name: "y"}},
	})
	enc.AddAssertion(smtlib.Expression{
		Name: "=",
		Arguments: []smtlib.Expression{
			{Name: "x"},
			{Name: "+", Arguments: []smtlib.Expression{{Name: "y"}, {Name: "10"}}},
		},
	})
	toEvaluate := []smtlib.Expression{
		{Name: "x", Sort: intSort},
		{Name: "y", Sort: intSort},
	}

	if dump {
		fmt.Print(d.DumpQuery(toEvaluate))
		return
	}

	fmt.Println("::", "checking x > y && x = y + 10")
	result, values := d.Check(toEvaluate)
	fmt.Println("::", "verdict:", result)
	for i, v := range values {
		fmt.Printf("%s%d = %s\n", smtlib.EvalPrefix, i, v)
	}
	for _, q := range d.UnhandledQueries() {
		fmt.Println("::", "no backend answered:")
		fmt.Print(q)
	}
}
