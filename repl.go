package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/peterh/liner"

	"github.com/devlynnx/solidity/sexpr"
	"github.com/devlynnx/solidity/solver"
)

const historyFile = ".smt_scratchpad_history"

// repl is a scratchpad for raw SMT-LIB2: lines accumulate into a
// script, :run sends it to every enabled backend and replies are
// re-rendered through the sexpr reader so models print in canonical
// form.
func repl(config solver.Config) {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)
	if f, err := os.Open(histPath); err == nil {
		ln.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			ln.WriteHistory(f)
			f.Close()
		}
	}()

	callback := solver.Command(time.Minute)
	var script strings.Builder
	fmt.Println("type SMT-LIB2 lines; :run sends them, :show prints them, :reset clears, :quit exits")
	for {
		line, err := ln.Prompt("smt> ")
		if err != nil {
			fmt.Println()
			return
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		ln.AppendHistory(line)
		if strings.HasPrefix(trimmed, ":") {
			switch trimmed {
			case ":quit":
				return
			case ":reset":
				script.Reset()
			case ":show":
				fmt.Print(script.String())
			case ":run":
				runScript(callback, config, script.String())
			default:
				fmt.Println("unknown command", trimmed)
			}
			continue
		}
		script.WriteString(line)
		script.WriteByte('\n')
	}
}

func runScript(callback solver.Callback, config solver.Config, script string) {
	var commands []string
	if config.Z3 {
		commands = append(commands, solver.Z3Command)
	}
	if config.CVC4 {
		commands = append(commands, solver.CVC4Command)
	}
	if len(commands) == 0 {
		fmt.Println("no backends enabled")
		return
	}
	for _, command := range commands {
		fmt.Println("::", command)
		response, err := callback(solver.QueryKind+" "+command, script)
		if err != nil {
			fmt.Println(err)
			continue
		}
		printResponse(response)
	}
}

func printResponse(response string) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Println("[ERROR]", r)
		}
	}()
	p := sexpr.NewParser(strings.NewReader(response))
	for {
		node, err := p.Parse()
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			fmt.Println("[ERROR]", err)
			return
		}
		fmt.Println(node)
	}
}
