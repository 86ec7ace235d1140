package seed

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/evanschultz/orderboard/internal/app"
	"github.com/evanschultz/orderboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	doc := `
orders:
  - title: Margherita
    table: "4"
  - title: Tiramisu
    table: "4"
    column: Preparing
  - title: Espresso
    table: bar
    column: served
`
	got, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, []app.SeedOrderInput{
		{Title: "Margherita", Table: "4", Column: domain.ColumnOrdered},
		{Title: "Tiramisu", Table: "4", Column: domain.ColumnPreparing},
		{Title: "Espresso", Table: "bar", Column: domain.ColumnServed},
	}, got)
}

func TestParseRejectsUnknownColumn(t *testing.T) {
	_, err := Parse(strings.NewReader("orders:\n  - title: x\n    column: trash\n"))
	require.ErrorIs(t, err, domain.ErrInvalidColumn)
	assert.Contains(t, err.Error(), "orders[0]")
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse(strings.NewReader("orders:\n  - title: x\n    price: 4\n"))
	require.Error(t, err)
}

func TestParseEmptyDocument(t *testing.T) {
	got, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoad(t *testing.T) {
	got, err := Load("  ")
	require.NoError(t, err)
	assert.Nil(t, got)

	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("orders:\n  - title: Soup\n    table: \"1\"\n"), 0o644))
	got, err = Load(path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Soup", got[0].Title)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
