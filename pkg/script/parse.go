package script

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	errs "github.com/matzehuels/heaviest/pkg/errors"
	"github.com/matzehuels/heaviest/pkg/graphio"
)

// record is the JSON and TOML shape of one operation:
//
//	{"op": "add", "args": [7, 5], "expect": true}
//
//	[[ops]]
//	op = "add"
//	args = [7, 5]
//	expect = true
type record struct {
	Op     string `json:"op" toml:"op"`
	Args   []int  `json:"args,omitempty" toml:"args,omitempty"`
	Expect any    `json:"expect,omitempty" toml:"expect,omitempty"`
}

type document struct {
	Ops []record `json:"ops" toml:"ops"`
}

// Parse reads a script in the given format ("text", "json" or "toml").
func Parse(r io.Reader, format string) ([]Op, error) {
	switch format {
	case graphio.FormatText:
		return ParseText(r)
	case graphio.FormatJSON:
		var doc document
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode json script")
		}
		return fromRecords(doc.Ops)
	case graphio.FormatTOML:
		var doc document
		md, err := toml.NewDecoder(r).Decode(&doc)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode toml script")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errs.New(errs.ErrCodeInvalidFormat, "decode toml script: unknown key %q", undecoded[0].String())
		}
		return fromRecords(doc.Ops)
	default:
		return nil, errs.ValidateFormat(format, graphio.Formats...)
	}
}

// Load reads the script at path. An empty format is inferred from the
// extension.
func Load(path, format string) ([]Op, error) {
	if err := errs.ValidatePath(path); err != nil {
		return nil, err
	}
	if format == "" {
		format = graphio.FormatFromPath(path)
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "script %s", path)
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()
	return Parse(f, format)
}

// ParseText reads one operation per line: a kind, its integer arguments and
// an optional "=> expected" suffix. Blank lines and "#" comments are skipped.
func ParseText(r io.Reader) ([]Op, error) {
	var ops []Op
	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		call, want, hasExpect := strings.Cut(text, "=>")
		fields := strings.Fields(call)
		if len(fields) == 0 {
			if hasExpect {
				return nil, errs.New(errs.ErrCodeInvalidOperation, "line %d: expectation without operation", line)
			}
			continue
		}

		op := Op{Kind: Kind(strings.ToLower(fields[0])), Line: line}
		for _, f := range fields[1:] {
			n, err := strconv.Atoi(f)
			if err != nil {
				return nil, errs.Wrap(errs.ErrCodeInvalidOperation, err, "line %d: argument %q", line, f)
			}
			op.Args = append(op.Args, n)
		}
		if hasExpect {
			e, err := parseExpect(op.Kind, strings.TrimSpace(want))
			if err != nil {
				return nil, errs.Wrap(errs.ErrCodeInvalidOperation, err, "line %d", line)
			}
			op.Expect = e
		}
		if err := op.Validate(); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidOperation, err, "line %d", line)
		}
		ops = append(ops, op)
	}
	if err := sc.Err(); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "read script")
	}
	return ops, nil
}

func parseExpect(k Kind, s string) (*Expect, error) {
	switch k {
	case KindAdd, KindDelete:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return nil, fmt.Errorf("%s expects true or false, got %q", k, s)
		}
		return &Expect{Bool: b}, nil
	}
	if s == "none" && k == KindMax {
		return &Expect{None: true}, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("%s expects an integer, got %q", k, s)
	}
	return &Expect{Int: n}, nil
}

func fromRecords(recs []record) ([]Op, error) {
	ops := make([]Op, 0, len(recs))
	for i, rec := range recs {
		op := Op{Kind: Kind(strings.ToLower(rec.Op)), Args: rec.Args}
		if rec.Expect != nil {
			e, err := expectFromValue(op.Kind, rec.Expect)
			if err != nil {
				return nil, errs.Wrap(errs.ErrCodeInvalidOperation, err, "op %d", i)
			}
			op.Expect = e
		}
		if err := op.Validate(); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidOperation, err, "op %d", i)
		}
		ops = append(ops, op)
	}
	return ops, nil
}

// expectFromValue converts a decoded JSON (bool, float64, string) or TOML
// (bool, int64, string) value.
func expectFromValue(k Kind, v any) (*Expect, error) {
	switch x := v.(type) {
	case bool:
		return parseExpect(k, strconv.FormatBool(x))
	case int64:
		return parseExpect(k, strconv.FormatInt(x, 10))
	case float64:
		if x != math.Trunc(x) {
			return nil, fmt.Errorf("%s expects an integer, got %v", k, x)
		}
		return parseExpect(k, strconv.FormatInt(int64(x), 10))
	case string:
		return parseExpect(k, x)
	default:
		return nil, fmt.Errorf("unsupported expectation %v (%T)", v, v)
	}
}

// WriteText writes ops in the text syntax accepted by [ParseText].
func WriteText(w io.Writer, ops []Op) error {
	bw := bufio.NewWriter(w)
	for _, op := range ops {
		if _, err := fmt.Fprintln(bw, op); err != nil {
			return err
		}
	}
	return bw.Flush()
}
