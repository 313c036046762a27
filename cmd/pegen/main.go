// Pegen is a console utility for the peg engine: it checks grammar
// descriptions, converts them to embeddable Go sources, JSON, or YAML, and
// parses sample inputs for grammar debugging.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"github.com/goccy/go-yaml"

	"github.com/ovsov/peg/grammar"
	"github.com/ovsov/peg/parser"
	"github.com/ovsov/peg/pegdef"
	"github.com/ovsov/peg/source"
)

const version = "1.0.0"

var cli struct {
	Check   checkCmd         `cmd:"" help:"Compile a grammar description and report problems."`
	Gen     genCmd           `cmd:"" help:"Convert a grammar description to Go source, JSON, or YAML."`
	Parse   parseCmd         `cmd:"" help:"Parse an input file with a grammar and dump the result."`
	Version kong.VersionFlag `help:"Print version and exit."`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("pegen"),
		kong.Description("PEG grammar compiler and debugging tool."),
		kong.Vars{"version": version},
	)

	if e := ctx.Run(); e != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "error: %s\n", e.Error())
		os.Exit(1)
	}
}

func loadGrammar(path string) (*grammar.Grammar, error) {
	content, e := os.ReadFile(path)
	if e != nil {
		return nil, e
	}
	return pegdef.ParseBytes(path, content)
}

type checkCmd struct {
	Grammar string `arg:"" help:"Grammar description file."`
}

func (cmd *checkCmd) Run() error {
	g, e := loadGrammar(cmd.Grammar)
	if e != nil {
		return e
	}
	if _, e = parser.New(g, nil); e != nil {
		return e
	}

	color.New(color.FgGreen).Printf("%s: %d rules", cmd.Grammar, len(g.Rules))
	if len(g.Externals) > 0 {
		fmt.Printf(", externals: %v", g.Externals)
	}
	fmt.Println()
	return nil
}

type genCmd struct {
	Grammar string `arg:"" help:"Grammar description file."`
	Format  string `short:"f" default:"go" enum:"go,json,yaml" help:"Output format: go, json, or yaml."`
	Output  string `short:"o" help:"Output file, stdout when omitted."`
	Package string `short:"p" default:"main" help:"Package name for Go output."`
	Var     string `short:"v" default:"Grammar" help:"Variable name for Go output."`
}

func (cmd *genCmd) Run() error {
	g, e := loadGrammar(cmd.Grammar)
	if e != nil {
		return e
	}

	var body []byte
	switch cmd.Format {
	case "json":
		body, e = json.MarshalIndent(g, "", "  ")
		body = append(body, '\n')
	case "yaml":
		body, e = yaml.Marshal(g)
	default:
		body, e = makeGo(g, cmd.Package, cmd.Var)
	}
	if e != nil {
		return e
	}

	if cmd.Output == "" {
		_, e = os.Stdout.Write(body)
		return e
	}
	return os.WriteFile(cmd.Output, body, 0o644)
}

// makeGo emits a Go source file holding the compiled grammar. The rule table
// is embedded as quoted JSON and decoded once on first use.
func makeGo(g *grammar.Grammar, packageName, varName string) ([]byte, error) {
	compact, e := json.Marshal(g)
	if e != nil {
		return nil, e
	}

	text := "// Code generated by pegen. DO NOT EDIT.\n\n" +
		"package " + packageName + "\n\n" +
		"import (\n" +
		"\t\"encoding/json\"\n\n" +
		"\t\"github.com/ovsov/peg/grammar\"\n" +
		")\n\n" +
		"var " + varName + " = mustGrammar(" + strconv.Quote(string(compact)) + ")\n\n" +
		"func mustGrammar(text string) *grammar.Grammar {\n" +
		"\tg := &grammar.Grammar{}\n" +
		"\tif e := json.Unmarshal([]byte(text), g); e != nil {\n" +
		"\t\tpanic(e)\n" +
		"\t}\n" +
		"\treturn g\n" +
		"}\n"
	return []byte(text), nil
}

type parseCmd struct {
	Grammar string `arg:"" help:"Grammar description file."`
	Input   string `arg:"" optional:"" help:"Input file, stdin when omitted or -."`
	Rule    string `short:"r" help:"Start rule, the first defined rule when omitted."`
	Prefix  bool   `help:"Allow unconsumed input after the match."`
	Memoize bool   `short:"m" help:"Enable per-offset rule memoization."`
}

func (cmd *parseCmd) Run() error {
	g, e := loadGrammar(cmd.Grammar)
	if e != nil {
		return e
	}
	p, e := parser.New(g, &parser.Config{Memoize: cmd.Memoize})
	if e != nil {
		return e
	}

	name := cmd.Input
	var content []byte
	if name == "" || name == "-" {
		name = "-stdin-"
		content, e = io.ReadAll(os.Stdin)
	} else {
		content, e = os.ReadFile(name)
	}
	if e != nil {
		return e
	}

	rule := cmd.Rule
	if rule == "" {
		rule = g.Rules[g.Root].Name
	}

	s := source.New(name, content)
	if cmd.Prefix {
		d, next, e := p.ParseRule(rule, s)
		if e != nil {
			return e
		}
		fmt.Printf("consumed %d of %d bytes\n", next.Pos(), s.Len())
		return dump(d)
	}

	d, e := p.ParseFrom(rule, s)
	if e != nil {
		return e
	}
	return dump(d)
}

func dump(value any) error {
	body, e := yaml.Marshal(value)
	if e != nil {
		return e
	}
	_, e = os.Stdout.Write(body)
	return e
}
