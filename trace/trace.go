// Package trace reads and writes instruction traces.
//
// A trace is a JSON-lines file with one completed instruction per line:
//
//	{"pc":4096,"class":"int_alu","operands":[5,10],"results":[15]}
//
// Blank lines and lines starting with '#' are ignored.
package trace

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sarchlab/reusesim/insts"
)

// maxLineSize bounds a single trace line.
const maxLineSize = 1 << 20

// Reader decodes instructions from a trace stream.
type Reader struct {
	scanner *bufio.Scanner
	line    int
}

// NewReader creates a Reader over r.
func NewReader(r io.Reader) *Reader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)
	return &Reader{scanner: scanner}
}

// Next returns the next instruction. It returns io.EOF after the last one.
func (r *Reader) Next() (*insts.Instruction, error) {
	for r.scanner.Scan() {
		r.line++
		data := bytes.TrimSpace(r.scanner.Bytes())
		if len(data) == 0 || data[0] == '#' {
			continue
		}

		inst := &insts.Instruction{}
		if err := json.Unmarshal(data, inst); err != nil {
			return nil, fmt.Errorf("trace line %d: %w", r.line, err)
		}
		if inst.Class == insts.OpClassUnknown {
			return nil, fmt.Errorf("trace line %d: missing instruction class", r.line)
		}

		return inst, nil
	}

	if err := r.scanner.Err(); err != nil {
		return nil, fmt.Errorf("trace line %d: %w", r.line+1, err)
	}

	return nil, io.EOF
}

// ReadAll decodes every remaining instruction.
func (r *Reader) ReadAll() ([]*insts.Instruction, error) {
	var all []*insts.Instruction
	for {
		inst, err := r.Next()
		if err == io.EOF {
			return all, nil
		}
		if err != nil {
			return nil, err
		}
		all = append(all, inst)
	}
}

// Load reads a whole trace file.
func Load(path string) ([]*insts.Instruction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace: %w", err)
	}
	defer f.Close()

	return NewReader(f).ReadAll()
}

// Writer encodes instructions as a trace stream.
type Writer struct {
	w   *bufio.Writer
	enc *json.Encoder
}

// NewWriter creates a Writer over w. Call Flush when done.
func NewWriter(w io.Writer) *Writer {
	bw := bufio.NewWriter(w)
	return &Writer{w: bw, enc: json.NewEncoder(bw)}
}

// Write appends one instruction to the trace.
func (w *Writer) Write(inst *insts.Instruction) error {
	if err := w.enc.Encode(inst); err != nil {
		return fmt.Errorf("failed to encode instruction at pc 0x%x: %w", inst.PC, err)
	}
	return nil
}

// Flush writes any buffered data to the underlying writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}

// Save writes a whole trace file.
func Save(path string, all []*insts.Instruction) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create trace: %w", err)
	}

	w := NewWriter(f)
	for _, inst := range all {
		if err := w.Write(inst); err != nil {
			_ = f.Close()
			return err
		}
	}

	if err := w.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write trace: %w", err)
	}

	return f.Close()
}
