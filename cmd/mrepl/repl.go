package main

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2025 The MeTTaTron Authors

*/

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/f1r3fly-io/mettatron/metta"
	"github.com/f1r3fly-io/mettatron/metta/mettalang"
)

// tracer traces with key 'mettatron.repl'.
func tracer() tracing.Trace {
	return tracing.Select("mettatron.repl")
}

// main() starts an interactive CLI, where users may enter MeTTa
// s-expressions. Each input line is compiled and run against the session
// state; fresh outputs are printed. The session state accumulates rules
// and outputs monotonically, exactly as chained run invocations do.
//
// Commands:
//
//    :env     print the environment (rules and type annotations)
//    :state   print the state signature and counters
//    :reset   start over with the empty state
//
// Quit with <ctrl>D.
func main() {
	// set up logging
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	initf := flag.String("init", "", "Initial load")
	flag.Parse()
	tracing.Select("mettatron.metta").SetTraceLevel(traceLevel(*tlevel))
	tracing.Select("mettatron.lang").SetTraceLevel(traceLevel(*tlevel))
	tracer().SetTraceLevel(traceLevel(*tlevel))
	pterm.Info.Println("Welcome to MeTTaTron") // colored welcome message
	tracer().Infof("Trace level is %s", *tlevel)
	//
	repl, err := readline.New("metta> ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp := &Intp{
		repl:  repl,
		state: metta.NewState(),
	}
	//
	// load an init file and start receiving commands / s-expressions
	tracer().Infof("Quit with <ctrl>D") // inform user how to stop the CLI
	intp.loadInitFile(*initf)           // init file name provided by flag
	intp.REPL()                         // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  =>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	repl  *readline.Instance
	state metta.State
}

func (intp *Intp) loadInitFile(filename string) {
	if filename == "" {
		return
	}
	f, err := os.Open(filename)
	if err != nil {
		tracer().Errorf("Unable to open init file: %s", filename)
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineno := 1
	for scanner.Scan() {
		line := scanner.Text()
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if err := intp.Eval(line); err != nil {
			tracer().Errorf("Error line %d: "+err.Error(), lineno)
		}
		lineno++
	}
	if err := scanner.Err(); err != nil {
		tracer().Errorf("Error while reading init file: " + err.Error())
	}
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if strings.HasPrefix(line, ":") {
			if intp.command(line) {
				break
			}
			continue
		}
		if err := intp.Eval(line); err != nil {
			pterm.Error.Println(err.Error())
		}
	}
	println("Good bye!")
}

// command executes a colon-command. Returns true to quit.
func (intp *Intp) command(line string) bool {
	switch line {
	case ":quit":
		return true
	case ":env":
		pterm.Println(envOf(intp.state).Dump())
	case ":state":
		s := intp.state
		pterm.Info.Println(fmt.Sprintf("state %s", s.Signature()))
		pterm.Println(fmt.Sprintf("  %d outputs, %d rules, %d types",
			len(s.Outputs), envOf(s).RuleCount(), envOf(s).TypeCount()))
	case ":reset":
		intp.state = metta.NewState()
		pterm.Info.Println("state reset")
	default:
		pterm.Error.Println("unknown command " + line)
	}
	return false
}

// Eval compiles a line of MeTTa source and runs it against the session
// state. Only the outputs fresh in this run are printed.
func (intp *Intp) Eval(line string) error {
	compiled, err := mettalang.Compile(line)
	if err != nil {
		return err
	}
	before := len(intp.state.Outputs)
	intp.state = metta.Run(intp.state, compiled)
	for _, out := range intp.state.Outputs[before:] {
		intp.printResult(out)
	}
	return nil
}

func (intp *Intp) printResult(result metta.Term) {
	if result.IsError() {
		pterm.Error.Println(result.String())
		return
	}
	pterm.Info.Println(result.String())
}

func envOf(s metta.State) *metta.Environment {
	if s.Env == nil {
		return metta.NewEnvironment()
	}
	return s.Env
}

func traceLevel(l string) tracing.TraceLevel {
	return tracing.TraceLevelFromString(l)
}
