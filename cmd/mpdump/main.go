package main

import (
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	msgpackcodec "github.com/wippyai/msgpack-codec"
	"github.com/wippyai/msgpack-codec/encoder"
	"github.com/wippyai/msgpack-codec/value"
)

func main() {
	var (
		file        = flag.String("file", "", "Path to MessagePack file (default: stdin)")
		hexInput    = flag.Bool("hex", false, "Input is hex text rather than raw bytes")
		jsonFile    = flag.String("json", "", "Encode mode: read JSON from this file ('-' for stdin), emit MessagePack")
		interactive = flag.Bool("i", false, "Interactive tree browser")
		verbose     = flag.Bool("v", false, "Verbose logging")
	)
	flag.Parse()

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		encoder.SetLogger(logger)
	}

	if *jsonFile != "" {
		if err := encodeJSON(*jsonFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	data, err := readInput(*file, *hexInput)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(data, inputName(*file)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := dump(data); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func inputName(file string) string {
	if file == "" {
		return "stdin"
	}
	return file
}

func readInput(file string, hexInput bool) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if file == "" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(file)
	}
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	if hexInput {
		cleaned := strings.Map(func(r rune) rune {
			if r == ' ' || r == '\n' || r == '\t' || r == '\r' {
				return -1
			}
			return r
		}, string(data))
		data, err = hex.DecodeString(cleaned)
		if err != nil {
			return nil, fmt.Errorf("decode hex: %w", err)
		}
	}

	return data, nil
}

// dump decodes every concatenated value in the input and pretty-prints each
// tree.
func dump(data []byte) error {
	values, err := decodeAll(data)
	if err != nil {
		return err
	}
	for i, v := range values {
		if len(values) > 1 {
			fmt.Printf("--- value %d ---\n", i+1)
		}
		printTree(v, 0, "")
	}
	return nil
}

func decodeAll(data []byte) ([]value.Value, error) {
	var values []value.Value
	rem := data
	for len(rem) > 0 {
		v, rest, err := msgpackcodec.Decode(rem)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
		rem = rest
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("empty input")
	}
	return values, nil
}

func printTree(v value.Value, depth int, label string) {
	indent := strings.Repeat("  ", depth)
	prefix := indent
	if label != "" {
		prefix += label + ": "
	}

	switch v.Kind() {
	case value.KindArray:
		fmt.Printf("%sarray (%d)\n", prefix, v.Len())
		for i, el := range v.Items() {
			printTree(el, depth+1, fmt.Sprintf("[%d]", i))
		}
	case value.KindMap:
		fmt.Printf("%smap (%d)\n", prefix, v.Len())
		for _, p := range v.Pairs() {
			printTree(p.Val, depth+1, p.Key.String())
		}
	default:
		fmt.Printf("%s%s %s\n", prefix, v.Kind(), v)
	}
}

// encodeJSON reads a JSON document and re-encodes it as MessagePack through
// the structural engine, writing the bytes to stdout.
func encodeJSON(path string) error {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("read JSON: %w", err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse JSON: %w", err)
	}

	b, err := msgpackcodec.Marshal(jsonValue{doc})
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	if _, err := os.Stdout.Write(b); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// jsonValue adapts a decoded JSON document to the Encodable protocol.
// Object keys are sorted so output is deterministic.
type jsonValue struct {
	v any
}

func (j jsonValue) EncodeMsgpack(enc *encoder.Encoder) error {
	switch t := j.v.(type) {
	case map[string]any:
		m := enc.Mapping()
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if err := m.Set(encoder.StringKey(k), jsonValue{t[k]}); err != nil {
				return err
			}
		}
		return nil
	case []any:
		s := enc.Sequence()
		for _, el := range t {
			if err := s.Append(jsonValue{el}); err != nil {
				return err
			}
		}
		return nil
	default:
		// string, float64, bool or nil
		return enc.SingleValue().Encode(t)
	}
}
