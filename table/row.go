package table

import "strings"

// Row is an ordered list of cells aligned with the headers of its table
type Row struct {
	cells []Data
}

func newRow(types []Type, record []string) (*Row, error) {
	cells := make([]Data, len(record))
	for i, value := range record {
		d, err := NewData(types[i], value)
		if err != nil {
			return nil, err
		}
		cells[i] = d
	}
	return &Row{cells: cells}, nil
}

// Len returns the number of cells
func (r *Row) Len() int { return len(r.cells) }

// Cell returns the cell at position i
func (r *Row) Cell(i int) Data { return r.cells[i] }

// Values returns the raw text of every cell
func (r *Row) Values() []string {
	values := make([]string, len(r.cells))
	for i, c := range r.cells {
		values[i] = c.value
	}
	return values
}

// String joins the cell values with commas
func (r *Row) String() string {
	return strings.Join(r.Values(), ",")
}
