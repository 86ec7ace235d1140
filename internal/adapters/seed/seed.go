// Package seed reads the YAML file used to pre-populate a board at startup.
package seed

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/evanschultz/orderboard/internal/app"
	"github.com/evanschultz/orderboard/internal/domain"
	"gopkg.in/yaml.v3"
)

// File is the on-disk seed document.
type File struct {
	Orders []Order `yaml:"orders"`
}

// Order is one seeded order. Column may be blank, which means ordered.
type Order struct {
	Title  string `yaml:"title"`
	Table  string `yaml:"table"`
	Column string `yaml:"column"`
}

// Load reads path. A blank path yields no orders.
func Load(path string) ([]app.SeedOrderInput, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	orders, err := Parse(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("seed file %s: %w", path, err)
	}
	return orders, nil
}

// Parse decodes a seed document and validates every column.
func Parse(r io.Reader) ([]app.SeedOrderInput, error) {
	var doc File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode seed yaml: %w", err)
	}

	out := make([]app.SeedOrderInput, 0, len(doc.Orders))
	for i, o := range doc.Orders {
		column := domain.ColumnOrdered
		if strings.TrimSpace(o.Column) != "" {
			parsed, err := domain.ParseColumn(o.Column)
			if err != nil {
				return nil, fmt.Errorf("orders[%d]: %w", i, err)
			}
			column = parsed
		}
		out = append(out, app.SeedOrderInput{
			Title:  o.Title,
			Table:  o.Table,
			Column: column,
		})
	}
	return out, nil
}
