package graph

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/golang/snappy"
	"golang.org/x/exp/mmap"
)

// CompressedSuffix marks graph files stored as snappy framed streams.
const CompressedSuffix = ".sz"

// LoadFile reads a graph from path. The file is memory mapped; files
// ending in CompressedSuffix are decompressed while parsing.
func LoadFile(path string) (*Graph, error) {
	ra, err := mmap.Open(path)
	if err != nil {
		return nil, &LoadError{Op: "open", Path: path, Cause: err}
	}
	defer ra.Close()

	var r io.Reader = io.NewSectionReader(ra, 0, int64(ra.Len()))
	if strings.HasSuffix(path, CompressedSuffix) {
		r = snappy.NewReader(r)
	}

	g, err := Parse(r)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
			return nil, le
		}
		return nil, &LoadError{Op: "parse", Path: path, Cause: err}
	}
	return g, nil
}

// Parse reads a graph in the text format described in the package docs.
// Tokens after the last edge are ignored.
func Parse(r io.Reader) (*Graph, error) {
	p := &parser{scanner: bufio.NewScanner(r)}
	p.scanner.Split(bufio.ScanWords)

	numNodes, err := p.count("node count")
	if err != nil {
		return nil, err
	}
	numEdges, err := p.count("edge count")
	if err != nil {
		return nil, err
	}

	g := New(numNodes)
	for i := 0; i < numNodes; i++ {
		w, err := p.integer(fmt.Sprintf("weight of node %d", i))
		if err != nil {
			return nil, err
		}
		g.weights[i] = w
	}

	for i := 0; i < numEdges; i++ {
		ctx := fmt.Sprintf("edge %d", i)
		a, err := p.index(ctx, numNodes)
		if err != nil {
			return nil, err
		}
		b, err := p.index(ctx, numNodes)
		if err != nil {
			return nil, err
		}
		g.AddEdge(a, b)
	}

	return g, nil
}

type parser struct {
	scanner *bufio.Scanner
	token   int
}

func (p *parser) next(ctx string) (string, error) {
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", &LoadError{Op: "read", Context: ctx, Cause: err}
		}
		return "", &LoadError{
			Op:      "parse",
			Context: ctx,
			Cause:   fmt.Errorf("%w: unexpected end of input", ErrMalformedInput),
		}
	}
	p.token++
	return p.scanner.Text(), nil
}

func (p *parser) integer(ctx string) (int64, error) {
	tok, err := p.next(ctx)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		return 0, p.fail(ctx, fmt.Errorf("%w: %q is not an integer", ErrMalformedInput, tok))
	}
	return v, nil
}

func (p *parser) count(ctx string) (int, error) {
	v, err := p.integer(ctx)
	if err != nil {
		return 0, err
	}
	if v < 0 || v > int64(maxCount) {
		return 0, p.fail(ctx, fmt.Errorf("%w: count %d out of range", ErrMalformedInput, v))
	}
	return int(v), nil
}

func (p *parser) index(ctx string, numNodes int) (int, error) {
	v, err := p.integer(ctx)
	if err != nil {
		return 0, err
	}
	if v < 0 || v >= int64(numNodes) {
		return 0, p.fail(ctx, fmt.Errorf("%w: %w: %d", ErrMalformedInput, ErrNodeOutOfRange, v))
	}
	return int(v), nil
}

func (p *parser) fail(ctx string, cause error) error {
	return &LoadError{Op: "parse", Token: p.token, Context: ctx, Cause: cause}
}

// maxCount bounds N and M so a corrupt header cannot trigger a huge allocation.
const maxCount = 1 << 28
