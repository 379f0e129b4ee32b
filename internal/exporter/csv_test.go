package exporter

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xin-10/Netflix-Data-Visualization/pkg/contracts/domain"
)

func sampleTable() *domain.YearValueTable {
	return &domain.YearValueTable{
		Chart:     "imdb_score_trend",
		ValueName: "imdb_score",
		Points: []domain.YearValue{
			{Year: 2018, Value: 7},
			{Year: 2019, Value: domain.NaN()},
			{Year: 2020, Value: 7.25},
		},
	}
}

func TestCSVWriter_ExportTable(t *testing.T) {
	tempDir := t.TempDir()
	writer := NewCSVWriter(tempDir, nil)

	path, err := writer.ExportTable(sampleTable())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tempDir, "imdb_score_trend.csv"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, utf8BOM))
	assert.Equal(t, "year,imdb_score\n2018,7\n2019,\n2020,7.25\n", string(content[len(utf8BOM):]))
}

func TestWriteTableCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTableCSV(&buf, sampleTable(), false))
	assert.Equal(t, "year,imdb_score\n2018,7\n2019,\n2020,7.25\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteTableCSV(&buf, &domain.ShareTable{Chart: "genre_trends", CategoryName: "genre"}, true))
	assert.Equal(t, string(utf8BOM)+"year,genre,count,total,percentage\n", buf.String())
}

func TestStreamWriter(t *testing.T) {
	tempDir := t.TempDir()
	writer := NewCSVWriter(tempDir, nil)

	stream, err := writer.CreateStreamWriter("stream.csv", []string{"year", "count"})
	require.NoError(t, err)
	for i := 0; i < 1000; i++ {
		require.NoError(t, stream.WriteRecord([]string{"2020", "1"}))
	}
	require.NoError(t, stream.Close())

	content, err := os.ReadFile(filepath.Join(tempDir, "stream.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content[len(utf8BOM):])), "\n")
	assert.Len(t, lines, 1001)
}
