package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	as := assert.New(t)

	o, err := parseFlags([]string{"-print", "-limit", "5", "data.csv"})
	require.NoError(t, err)
	as.True(o.print)
	as.Equal(5, o.limit)
	as.Equal("data.csv", o.file)
	as.Equal(60, o.timeout)

	_, err = parseFlags([]string{"-table", "a.b.c"})
	as.Error(err)
	_, err = parseFlags([]string{"-print"})
	as.Error(err)
	_, err = parseFlags([]string{"a.csv", "b.csv"})
	as.Error(err)
}

func TestPrintCSV(t *testing.T) {
	as := assert.New(t)
	dir := t.TempDir()

	data := filepath.Join(dir, "orders.csv")
	require.NoError(t, os.WriteFile(data, []byte("id,total,city\n1,10.5,Lund\n2,3,\n"), 0o600))
	desc := filepath.Join(dir, "table.yaml")
	require.NoError(t, os.WriteFile(desc, []byte(`
columns:
  - {name: city}
  - {name: total, type: number, format: "%.2f"}
`), 0o600))

	var out bytes.Buffer
	err := run(options{print: true, ascii: true, file: data, configPath: desc, timeout: 5}, &out)
	require.NoError(t, err)

	as.Contains(out.String(), "city")
	as.Contains(out.String(), "10.50")
	as.Contains(out.String(), "3.00")
	as.Contains(out.String(), "Lund")
	as.NotContains(out.String(), "id")
}
