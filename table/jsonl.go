package table

import (
	"bufio"
	"bytes"
	"fmt"
	"math"

	"github.com/go-sif/remoteframe"
	"github.com/tidwall/gjson"
)

// maxLineSize bounds the length of a single JSON line
const maxLineSize = 64 * 1024 * 1024

// FromJSONLines parses JSON Lines data into a DataFrame with the given Schema.
// Keys which do not correspond to a column are ignored; missing keys are null.
func FromJSONLines(s remoteframe.Schema, data []byte) (*DataFrame, error) {
	s = s.Clone()
	names, types := s.ColumnNames(), s.ColumnTypes()
	df := &DataFrame{schema: s, columns: make([][]interface{}, len(names))}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		if !gjson.ValidBytes(line) {
			return nil, fmt.Errorf("Row %d is not valid JSON", df.numRows)
		}
		row := gjson.ParseBytes(line)
		if !row.IsObject() {
			return nil, fmt.Errorf("Row %d is not a JSON object", df.numRows)
		}
		for i, name := range names {
			val, err := parseValue(row.Get(gjson.Escape(name)), name, types[i])
			if err != nil {
				return nil, fmt.Errorf("Row %d: %w", df.numRows, err)
			}
			df.columns[i] = append(df.columns[i], val)
		}
		df.numRows++
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	for i := range df.columns {
		if df.columns[i] == nil {
			df.columns[i] = []interface{}{}
		}
	}
	return df, nil
}

func parseValue(val gjson.Result, colName string, colType remoteframe.DType) (interface{}, error) {
	if !val.Exists() || val.Type == gjson.Null {
		return nil, nil
	}
	switch {
	case colType == remoteframe.Boolean:
		if !val.IsBool() {
			return nil, fmt.Errorf("Column %s was not a boolean. Was: %s", colName, val.Raw)
		}
		return val.Bool(), nil
	case colType.IsInteger() && colType.IsSigned():
		if val.Type != gjson.Number || val.Num != math.Trunc(val.Num) {
			return nil, fmt.Errorf("Column %s was not an integer. Was: %s", colName, val.Raw)
		}
		return val.Int(), nil
	case colType.IsInteger():
		if val.Type != gjson.Number || val.Num != math.Trunc(val.Num) || val.Num < 0 {
			return nil, fmt.Errorf("Column %s was not an unsigned integer. Was: %s", colName, val.Raw)
		}
		return val.Uint(), nil
	case colType.IsFloat():
		if val.Type != gjson.Number {
			return nil, fmt.Errorf("Column %s was not a number. Was: %s", colName, val.Raw)
		}
		return val.Float(), nil
	case colType == remoteframe.Utf8, colType == remoteframe.Categorical:
		if val.Type != gjson.String {
			return nil, fmt.Errorf("Column %s was not a string. Was: %s", colName, val.Raw)
		}
		return val.String(), nil
	case colType.IsTemporal():
		// temporal values arrive either as integer offsets from the epoch or as formatted strings
		switch val.Type {
		case gjson.Number:
			return val.Int(), nil
		case gjson.String:
			return val.String(), nil
		}
		return nil, fmt.Errorf("Column %s was not a temporal value. Was: %s", colName, val.Raw)
	case colType.IsList():
		if !val.IsArray() {
			return nil, fmt.Errorf("Column %s was not a list. Was: %s", colName, val.Raw)
		}
		elems := val.Array()
		res := make([]interface{}, len(elems))
		for i, elem := range elems {
			parsed, err := parseValue(elem, fmt.Sprintf("%s[%d]", colName, i), colType.Inner())
			if err != nil {
				return nil, err
			}
			res[i] = parsed
		}
		return res, nil
	case colType == remoteframe.Null:
		return nil, fmt.Errorf("Column %s should only contain nulls. Was: %s", colName, val.Raw)
	}
	return nil, fmt.Errorf("JSON Lines parsing does not support column type %s", colType)
}
