package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	calculator "github.com/Rc-Cookie/calculator-sub000"
)

func main() {
	log.SetFlags(0)
	var (
		inname, verb, defs string
		with               [][2]string
		nl, echo, verbose  bool
		digits             int
	)
	addwith := func(s string) error {
		d := strings.SplitN(s, "=", 2)
		if len(d) != 2 {
			return fmt.Errorf(`variable definitions must be "name=value", not %q`, s)
		}
		with = append(with, [2]string{strings.TrimSpace(d[0]), strings.TrimSpace(d[1])})
		return nil
	}
	flag.StringVar(&inname, "in", "", "input file (default stdin if no args given)")
	flag.StringVar(&verb, "fmt", "%v", "result formatting string")
	flag.StringVar(&defs, "defs", "", "YAML file of name: expression definitions to load first")
	flag.Func("given", "name=value variable definition (any number of times)", addwith)
	flag.IntVar(&digits, "digits", 0, "significant digits of special functions (0 derives them from the operands)")
	flag.BoolVar(&nl, "n", false, "parse separate input lines as separate expressions")
	flag.BoolVar(&echo, "echo", false, "print expressions before their results")
	flag.BoolVar(&verbose, "v", false, "log parse trees and simplified trees")
	flag.Parse()
	if digits < 0 {
		log.Fatalf("digits (%d) must not be negative", digits)
	}

	var ins []io.RuneScanner
	f, err := infile(inname, flag.NArg() == 0)
	if err != nil {
		log.Fatal(err)
	}
	if f != nil {
		ins = append(ins, f)
	}
	for _, arg := range flag.Args() {
		ins = append(ins, strings.NewReader(arg))
	}

	env := calculator.NewEnv(calculator.Digits(digits))
	if defs != "" {
		if err := loadDefs(env, defs); err != nil {
			log.Fatalf("%s: %v", defs, err)
		}
	}
	if err := given(env, with); err != nil {
		log.Fatal(err)
	}

	var p []*calculator.Expr
	var opts []calculator.ParseOption
	if nl {
		opts = append(opts, calculator.StopOn('\n'))
	}
	for _, in := range ins {
		for {
			// First check whether we're done with the input.
			if _, _, err := in.ReadRune(); err != nil {
				if err == io.EOF {
					break
				}
				log.Fatal(err)
			}
			in.UnreadRune()
			a, err := calculator.Parse(in, opts...)
			if err != nil {
				var empty *calculator.EmptyExpressionError
				if errors.As(err, &empty) && empty.End == "" {
					// Only trailing whitespace was left.
					break
				}
				log.Fatal(err)
			}
			if verbose {
				log.Printf("parsed: %v", a)
				log.Printf("simplified: %v", a.Simplify())
			}
			p = append(p, a)
		}
	}

	verb += "\n"
	for _, a := range p {
		if echo {
			fmt.Printf("%v : ", a)
		}
		r, err := a.Eval(env)
		if err != nil {
			fmt.Println(err)
			continue
		}
		fmt.Printf(verb, r)
	}
}

// given evaluates each name=value pair in env and binds the name, so values
// can use earlier definitions.
func given(env *calculator.Env, with [][2]string) error {
	for _, d := range with {
		a, err := calculator.ParseString(d[1])
		if err != nil {
			return fmt.Errorf("setting %s: %w", d[0], err)
		}
		r, err := a.Eval(env)
		if err != nil {
			return fmt.Errorf("setting %s: %w", d[0], err)
		}
		env.Put(d[0], r)
	}
	return nil
}

func loadDefs(env *calculator.Env, name string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()
	d, err := readDefs(f)
	if err != nil {
		return err
	}
	return define(env, d)
}

func infile(inname string, std bool) (io.RuneScanner, error) {
	var f *os.File
	switch {
	case inname != "" && inname != "-":
		in, err := os.Open(inname)
		if err != nil {
			return nil, err
		}
		f = in
	case inname == "-", std:
		f = os.Stdin
	}
	if f == nil {
		return nil, nil
	}
	return bufio.NewReader(f), nil
}
