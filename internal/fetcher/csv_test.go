package fetcher

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV_Basic(t *testing.T) {
	input := "a,b,c\n1,2,3\n4,5,6\n"
	rows, err := ReadCSV(strings.NewReader(input), CSVOptions{})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"a", "b", "c"}, rows[0])
	assert.Equal(t, []string{"1", "2", "3"}, rows[1])
	assert.Equal(t, []string{"4", "5", "6"}, rows[2])
}

func TestReadCSV_PipeDelimited(t *testing.T) {
	input := "a|b|c\n1|2|3\n"
	rows, err := ReadCSV(strings.NewReader(input), CSVOptions{Delimiter: '|'})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"1", "2", "3"}, rows[1])
}

func TestReadCSV_TrimSpace(t *testing.T) {
	input := " a , b \n 1 , 2 \n"
	rows, err := ReadCSV(strings.NewReader(input), CSVOptions{TrimSpace: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, rows[0])
	assert.Equal(t, []string{"1", "2"}, rows[1])
}

func TestReadCSV_Comment(t *testing.T) {
	input := "# generated\na,b\n1,2\n"
	rows, err := ReadCSV(strings.NewReader(input), CSVOptions{Comment: '#'})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"a", "b"}, rows[0])
}

func TestReadCSV_VariableFields(t *testing.T) {
	input := "a,b,c\n1,2\n"
	rows, err := ReadCSV(strings.NewReader(input), CSVOptions{})
	require.NoError(t, err)
	assert.Len(t, rows[1], 2)
}

func TestReadCSV_Empty(t *testing.T) {
	rows, err := ReadCSV(strings.NewReader(""), CSVOptions{})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestReadCSV_BadQuote(t *testing.T) {
	input := "a,b\n\"1,2\n"
	_, err := ReadCSV(strings.NewReader(input), CSVOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "csv: read row 2")
}
