package table

import (
	"fmt"
	"strings"

	"github.com/go-sif/remoteframe"
)

// DataFrame is a realized, in-memory dataframe. Values are stored per column:
// bool, int64, uint64, float64, string, []interface{} (lists), or nil (null).
type DataFrame struct {
	schema  remoteframe.Schema
	columns [][]interface{}
	numRows int
}

// Schema returns a copy of the Schema of this DataFrame
func (df *DataFrame) Schema() remoteframe.Schema {
	return df.schema.Clone()
}

// NumRows returns the number of rows in this DataFrame
func (df *DataFrame) NumRows() int {
	return df.numRows
}

// NumColumns returns the number of columns in this DataFrame
func (df *DataFrame) NumColumns() int {
	return df.schema.NumColumns()
}

// Column returns the values of a column, in row order
func (df *DataFrame) Column(name string) ([]interface{}, error) {
	col, err := df.schema.GetColumn(name)
	if err != nil {
		return nil, err
	}
	res := make([]interface{}, df.numRows)
	copy(res, df.columns[col.Index()])
	return res, nil
}

// Row returns the values of a row, in column order
func (df *DataFrame) Row(i int) ([]interface{}, error) {
	if i < 0 || i >= df.numRows {
		return nil, fmt.Errorf("Row %d is out of range [0, %d)", i, df.numRows)
	}
	res := make([]interface{}, len(df.columns))
	for c, values := range df.columns {
		res[c] = values[i]
	}
	return res, nil
}

// Value returns a single value
func (df *DataFrame) Value(colName string, i int) (interface{}, error) {
	col, err := df.schema.GetColumn(colName)
	if err != nil {
		return nil, err
	}
	if i < 0 || i >= df.numRows {
		return nil, fmt.Errorf("Row %d is out of range [0, %d)", i, df.numRows)
	}
	return df.columns[col.Index()][i], nil
}

// maxPrintedRows bounds the output of String()
const maxPrintedRows = 10

// String renders the shape, header and first rows of this DataFrame
func (df *DataFrame) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "shape: (%d, %d)\n", df.numRows, df.NumColumns())
	names, types := df.schema.ColumnNames(), df.schema.ColumnTypes()
	header := make([]string, len(names))
	for i, name := range names {
		header[i] = fmt.Sprintf("%s (%s)", name, types[i])
	}
	b.WriteString(strings.Join(header, " | "))
	b.WriteByte('\n')
	for r := 0; r < df.numRows && r < maxPrintedRows; r++ {
		cells := make([]string, len(df.columns))
		for c := range df.columns {
			if v := df.columns[c][r]; v == nil {
				cells[c] = "null"
			} else {
				cells[c] = fmt.Sprintf("%v", v)
			}
		}
		b.WriteString(strings.Join(cells, " | "))
		b.WriteByte('\n')
	}
	if df.numRows > maxPrintedRows {
		fmt.Fprintf(&b, "... %d more rows\n", df.numRows-maxPrintedRows)
	}
	return b.String()
}
