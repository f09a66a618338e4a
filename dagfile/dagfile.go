// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package dagfile reads the DAG text format used by the pasta example
// drivers: a node count, one quoted node name per line, then zero or more
// quoted-name "->" quoted-name edge lines, every node and edge line
// terminated by a semicolon. dagfile is deliberately independent of [pasta.Graph]'s
// internals -- it only calls the public InsertNode/InsertEdge API -- since
// the file reader is an external collaborator, not part of the partitioning
// core.
package dagfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pasta-dag/pasta-go"
)

// Load reads the DAG file at path into a freshly created [pasta.Graph].
func Load(path string) (*pasta.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dagfile: %w", err)
	}
	defer f.Close()
	return Read(f, path)
}

// Read parses the DAG text format from r into a freshly created
// [pasta.Graph]. path is used only to annotate [pasta.ParseError]; pass ""
// if r is not backed by a named file.
func Read(r io.Reader, path string) (*pasta.Graph, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	line := 0
	nextLine := func() (string, bool) {
		for sc.Scan() {
			line++
			text := strings.TrimSpace(sc.Text())
			if text != "" {
				return text, true
			}
		}
		return "", false
	}

	countLine, ok := nextLine()
	if !ok {
		return nil, &pasta.ParseError{Path: path, Line: line, Msg: "missing node count"}
	}
	var numNodes int
	if _, err := fmt.Sscanf(countLine, "%d", &numNodes); err != nil {
		return nil, &pasta.ParseError{Path: path, Line: line, Msg: "node count is not an integer"}
	}
	if numNodes < 0 {
		return nil, &pasta.ParseError{Path: path, Line: line, Msg: "node count must not be negative"}
	}

	g := pasta.NewGraph()
	byName := make(map[string]pasta.NodeHandle, numNodes)

	for i := 0; i < numNodes; i++ {
		text, ok := nextLine()
		if !ok {
			return nil, &pasta.ParseError{Path: path, Line: line, Msg: "unexpected end of file while reading node names"}
		}
		name, err := unquote(text)
		if err != nil {
			return nil, &pasta.ParseError{Path: path, Line: line, Msg: err.Error()}
		}
		byName[name] = g.InsertNode(name)
	}

	for {
		text, ok := nextLine()
		if !ok {
			break
		}
		fromTok, toTok, err := splitEdgeLine(text)
		if err != nil {
			return nil, &pasta.ParseError{Path: path, Line: line, Msg: err.Error()}
		}
		from, err := unquote(fromTok)
		if err != nil {
			return nil, &pasta.ParseError{Path: path, Line: line, Msg: err.Error()}
		}
		to, err := unquote(toTok)
		if err != nil {
			return nil, &pasta.ParseError{Path: path, Line: line, Msg: err.Error()}
		}
		fromHandle, ok := byName[from]
		if !ok {
			return nil, &pasta.ParseError{Path: path, Line: line, Msg: fmt.Sprintf("edge references unknown node %q", from)}
		}
		toHandle, ok := byName[to]
		if !ok {
			return nil, &pasta.ParseError{Path: path, Line: line, Msg: fmt.Sprintf("edge references unknown node %q", to)}
		}
		g.InsertEdge(fromHandle, toHandle)
	}

	if err := sc.Err(); err != nil {
		return nil, &pasta.ParseError{Path: path, Line: line, Msg: err.Error()}
	}
	return g, nil
}

// splitEdgeLine splits an edge line at its "->". Read takes node lines by
// position (the first N non-empty lines after the count) and passes every
// later line here, so a line without "->" after the node list is rejected;
// an edge line placed inside the node list is not recognized as one.
func splitEdgeLine(text string) (from, to string, err error) {
	idx := strings.Index(text, "->")
	if idx < 0 {
		return "", "", fmt.Errorf("expected an edge line containing \"->\", got %q", text)
	}
	from = strings.TrimSpace(text[:idx])
	to = strings.TrimSpace(text[idx+len("->"):])
	return from, to, nil
}

// unquote strips the leading/trailing quote and trailing semicolon literal
// from a token, e.g. `"A";` -> `A`.
func unquote(tok string) (string, error) {
	tok = strings.TrimSpace(tok)
	tok = strings.TrimSuffix(tok, ";")
	if len(tok) < 2 || tok[0] != '"' || tok[len(tok)-1] != '"' {
		return "", fmt.Errorf("expected a quoted token, got %q", tok)
	}
	return tok[1 : len(tok)-1], nil
}
