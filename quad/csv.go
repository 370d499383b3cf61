package quad

import (
	"encoding/csv"
	"io"

	"github.com/pkg/errors"
)

// Header is the column layout of an instruction table.
var Header = []string{"Operation", "Arg1", "Arg2", "Result"}

// WriteCSV writes instructions as a table with Header as its first row.
func WriteCSV(w io.Writer, instructions []Instruction) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(Header); err != nil {
		return errors.Wrap(err, "quad: write header")
	}
	for _, ins := range instructions {
		if err := writer.Write([]string{string(ins.Op), ins.Arg1, ins.Arg2, ins.Result}); err != nil {
			return errors.Wrapf(err, "quad: write instruction %s", ins)
		}
	}
	writer.Flush()
	return errors.Wrap(writer.Error(), "quad: flush")
}

// ReadCSV reads a table written by WriteCSV. The header row is required; the operation
// of each row is taken as is, so tables from other tools with unknown operations load fine.
func ReadCSV(r io.Reader) ([]Instruction, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(Header)
	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.New("quad: empty instruction table")
	}
	if err != nil {
		return nil, errors.Wrap(err, "quad: read header")
	}
	for i, column := range Header {
		if header[i] != column {
			return nil, errors.Errorf("quad: unexpected column %q at %d, want %q", header[i], i, column)
		}
	}
	var instructions []Instruction
	for {
		record, err := reader.Read()
		if err == io.EOF {
			return instructions, nil
		}
		if err != nil {
			return nil, errors.Wrapf(err, "quad: read instruction %d", len(instructions))
		}
		instructions = append(instructions, New(Op(record[0]), record[1], record[2], record[3]))
	}
}
