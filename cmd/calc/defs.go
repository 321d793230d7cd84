package main

import (
	"errors"
	"fmt"
	"io"

	calculator "github.com/Rc-Cookie/calculator-sub000"
	"gopkg.in/yaml.v3"
)

// definition is one entry of a definitions file.
type definition struct {
	// target is a name or a signature like f(x, y).
	target string
	src    string
	line   int
}

// readDefs reads a YAML mapping of definition targets to expressions. The
// definitions are returned in file order, so later ones can use earlier ones.
func readDefs(r io.Reader) ([]definition, error) {
	var root yaml.Node
	if err := yaml.NewDecoder(r).Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading definitions: %w", err)
	}
	node := &root
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: definitions must be a mapping of names to expressions", node.Line)
	}
	defs := make([]definition, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		if v.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: definition of %s is not an expression", v.Line, k.Value)
		}
		defs = append(defs, definition{target: k.Value, src: v.Value, line: k.Line})
	}
	return defs, nil
}

// define evaluates each definition in env.
func define(env *calculator.Env, defs []definition) error {
	for _, d := range defs {
		e, err := calculator.ParseString(d.target + " := (" + d.src + ")")
		if err != nil {
			return fmt.Errorf("line %d: %s: %w", d.line, d.target, err)
		}
		if _, err := e.Eval(env); err != nil {
			return fmt.Errorf("line %d: %s: %w", d.line, d.target, err)
		}
	}
	return nil
}
