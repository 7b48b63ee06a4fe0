package builders

import (
	"errors"
	"fmt"

	"github.com/rdb2csv/rdb2csv/core"
)

// ColumnsFromResultStream converts the result stream to columns.
// A result stream should return rows that are at least 2 columns wide and
// have the following structure:
//
//	1st elem: name - string
//	2nd elem: type - string
func ColumnsFromResultStream(rows core.ResultStream) ([]*core.Column, error) {
	var out []*core.Column

	for rows.HasNext() {
		row, err := rows.Next()
		if err != nil {
			return nil, fmt.Errorf("result.Next: %w", err)
		}

		if len(row) < 2 {
			return nil, errors.New("could not retrieve column info: insufficient data")
		}

		if row[0].Kind() != core.KindString {
			return nil, errors.New("could not retrieve column info: name not a string")
		}

		// untyped sqlite columns report an empty or null type
		if !row[1].IsNull() && row[1].Kind() != core.KindString {
			return nil, errors.New("could not retrieve column info: type not a string")
		}

		column := &core.Column{
			Name: row[0].Text(),
			Type: row[1].Text(),
		}

		out = append(out, column)
	}

	return out, nil
}

// StructureFromResultStream converts rows in form of (schema, name, type)
// to a list of schemas with their tables and views as children.
func StructureFromResultStream(rows core.ResultStream, decodeType func(string) core.StructureType) ([]*core.Structure, error) {
	var out []*core.Structure
	schemas := make(map[string]*core.Structure)

	for rows.HasNext() {
		row, err := rows.Next()
		if err != nil {
			return nil, fmt.Errorf("result.Next: %w", err)
		}

		if len(row) < 3 {
			return nil, errors.New("could not retrieve structure: insufficient data")
		}

		schemaName, name, typ := row[0].Text(), row[1].Text(), row[2].Text()

		schema, ok := schemas[schemaName]
		if !ok {
			schema = &core.Structure{
				Name:   schemaName,
				Schema: schemaName,
				Type:   core.StructureTypeNone,
			}
			schemas[schemaName] = schema
			out = append(out, schema)
		}

		schema.Children = append(schema.Children, &core.Structure{
			Name:   name,
			Schema: schemaName,
			Type:   decodeType(typ),
		})
	}

	return out, nil
}
