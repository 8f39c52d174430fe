package columnar

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/linkedin/goavro/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/arff/pkg/arff"
	"github.com/ajitpratap0/arff/pkg/dataset"
	"github.com/ajitpratap0/arff/pkg/errors"
	"github.com/ajitpratap0/arff/pkg/testutil"
)

const weather = `@relation 'weather data'
@attribute 'temp (C)' numeric
@attribute outlook {sunny, overcast, rainy}
@attribute outlook_index numeric
@data
21.5, sunny, 1
?, rainy, 2
-3, ?, ?
`

func loadBatch(t *testing.T, content string) *arff.Batch {
	t.Helper()
	ds, err := arff.NewLoader(nil, testutil.TestLogger(t)).Parse(testutil.TestContext(t), strings.NewReader(content), true)
	require.NoError(t, err)
	return ds.(*arff.Batch)
}

func TestSanitizeName(t *testing.T) {
	tests := map[string]string{
		"temp":       "temp",
		"temp (C)":   "temp__C_",
		"1st":        "_1st",
		"":           "_",
		"a-b.c":      "a_b_c",
		"Iris_class": "Iris_class",
		"é":          "__",
	}
	for in, want := range tests {
		assert.Equal(t, want, sanitizeName(in), in)
	}
}

func TestUniqueNames(t *testing.T) {
	got := uniqueNames([]string{"a b", "a_b", "a-b", "a_b_2"}, sanitizeName)
	assert.Equal(t, []string{"a_b", "a_b_2", "a_b_3", "a_b_2_2"}, got)
}

func TestColumnPlan(t *testing.T) {
	b := loadBatch(t, weather)

	plan, err := newColumnPlan(b.Headers(), true)
	require.NoError(t, err)
	assert.Equal(t, []string{"temp (C)", "outlook", "outlook_index", "outlook_index"}, plan.columnNames())

	keys := make([]string, len(plan.columns))
	for i, c := range plan.columns {
		keys[i] = c.key
	}
	assert.Equal(t, []string{"temp__C_", "outlook", "outlook_index", "outlook_index_2"}, keys)
}

func TestExportJSON(t *testing.T) {
	b := loadBatch(t, weather)

	var buf bytes.Buffer
	n, err := Export(testutil.TestContext(t), &buf, b, &WriterConfig{Format: JSON})
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, `{"temp__C_":21.5,"outlook":"sunny","outlook_index":1}`, lines[0])
	assert.Equal(t, `{"temp__C_":null,"outlook":"rainy","outlook_index":2}`, lines[1])
	assert.Equal(t, `{"temp__C_":-3,"outlook":null,"outlook_index":null}`, lines[2])
}

func TestExportJSONWithIndex(t *testing.T) {
	b := loadBatch(t, weather)

	var buf bytes.Buffer
	_, err := Export(testutil.TestContext(t), &buf, b, &WriterConfig{Format: JSON, IndexColumns: true})
	require.NoError(t, err)

	var first map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(strings.SplitN(buf.String(), "\n", 2)[0]), &first))
	assert.Equal(t, map[string]interface{}{
		"temp__C_":        21.5,
		"outlook":         "sunny",
		"outlook_index":   float64(0),
		"outlook_index_2": float64(1),
	}, first)
}

func TestExportArrow(t *testing.T) {
	b := loadBatch(t, weather)

	var buf bytes.Buffer
	n, err := Export(testutil.TestContext(t), &buf, b, &WriterConfig{Format: Arrow, BatchSize: 2, IndexColumns: true})
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	reader, err := ipc.NewFileReader(bytes.NewReader(buf.Bytes()), ipc.WithAllocator(memory.NewGoAllocator()))
	require.NoError(t, err)
	defer reader.Close()

	schema := reader.Schema()
	relation, ok := schema.Metadata().GetValue(MetadataRelation)
	require.True(t, ok)
	assert.Equal(t, "weather data", relation)

	require.Equal(t, 4, schema.NumFields())
	assert.Equal(t, "temp (C)", schema.Field(0).Name)
	assert.Equal(t, arrow.PrimitiveTypes.Float64, schema.Field(0).Type)
	assert.Equal(t, arrow.BinaryTypes.String, schema.Field(1).Type)
	assert.Equal(t, arrow.PrimitiveTypes.Int32, schema.Field(2).Type)
	classes, ok := schema.Field(1).Metadata.GetValue(MetadataClasses)
	require.True(t, ok)
	assert.Equal(t, `["sunny","overcast","rainy"]`, classes)

	// three rows in batches of two
	require.Equal(t, 2, reader.NumRecords())

	first, err := reader.Record(0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), first.NumRows())
	temps := first.Column(0).(*array.Float64)
	assert.Equal(t, 21.5, temps.Value(0))
	assert.True(t, temps.IsNull(1))
	labels := first.Column(1).(*array.String)
	assert.Equal(t, "rainy", labels.Value(1))
	assert.Equal(t, int32(2), first.Column(2).(*array.Int32).Value(1))

	second, err := reader.Record(1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), second.NumRows())
	assert.True(t, second.Column(1).IsNull(0))
	assert.True(t, second.Column(2).IsNull(0))
	assert.Equal(t, -3.0, second.Column(0).(*array.Float64).Value(0))
}

func TestExportAvro(t *testing.T) {
	for _, codec := range []string{"null", "deflate", "snappy"} {
		t.Run(codec, func(t *testing.T) {
			b := loadBatch(t, weather)

			var buf bytes.Buffer
			n, err := Export(testutil.TestContext(t), &buf, b, &WriterConfig{Format: Avro, Compression: codec, BatchSize: 2})
			require.NoError(t, err)
			assert.Equal(t, int64(3), n)

			ocfr, err := goavro.NewOCFReader(bytes.NewReader(buf.Bytes()))
			require.NoError(t, err)
			assert.Contains(t, ocfr.Codec().Schema(), "weather_data")

			var records []map[string]interface{}
			for ocfr.Scan() {
				datum, err := ocfr.Read()
				require.NoError(t, err)
				records = append(records, datum.(map[string]interface{}))
			}
			require.NoError(t, ocfr.Err())
			require.Len(t, records, 3)

			assert.Equal(t, map[string]interface{}{"double": 21.5}, records[0]["temp__C_"])
			assert.Equal(t, map[string]interface{}{"string": "sunny"}, records[0]["outlook"])
			assert.Nil(t, records[1]["temp__C_"])
			assert.Nil(t, records[2]["outlook"])
		})
	}
}

func TestExportStream(t *testing.T) {
	ds, err := arff.NewLoader(nil, testutil.TestLogger(t)).Parse(testutil.TestContext(t), strings.NewReader(weather), false)
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := Export(testutil.TestContext(t), &buf, ds, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.Equal(t, 3, strings.Count(buf.String(), "\n"))
}

func TestExportStopsOnParseError(t *testing.T) {
	ds, err := arff.NewLoader(nil, testutil.TestLogger(t)).Parse(testutil.TestContext(t),
		strings.NewReader("@relation r\n@attribute x numeric\n@data\n1\n2\nbad\n"), false)
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := Export(testutil.TestContext(t), &buf, ds, &WriterConfig{Format: JSON})
	assert.True(t, errors.IsType(err, errors.ErrorTypeInvalidValue))
	assert.Equal(t, int64(2), n)
}

func TestWriterRejectsForeignRows(t *testing.T) {
	a := loadBatch(t, weather)
	b := loadBatch(t, weather)

	for _, format := range []Format{Arrow, Avro, JSON} {
		t.Run(string(format), func(t *testing.T) {
			w, err := NewWriter(&bytes.Buffer{}, a.Name(), a.Headers(), &WriterConfig{Format: format})
			require.NoError(t, err)

			row, err := b.Row(0)
			require.NoError(t, err)
			assert.True(t, errors.IsType(w.Write(row), errors.ErrorTypeOwnership))

			require.NoError(t, w.Close())
			require.NoError(t, w.Close())
			assert.Equal(t, format, w.Format())

			own, _ := a.Row(0)
			assert.True(t, errors.IsType(w.Write(own), errors.ErrorTypeExport))
		})
	}
}

func TestNewWriterUnsupportedFormat(t *testing.T) {
	headers := dataset.NewHeadersBuilder().Freeze()
	_, err := NewWriter(&bytes.Buffer{}, "r", headers, &WriterConfig{Format: "orc"})
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))

	_, err = NewWriter(&bytes.Buffer{}, "r", nil, nil)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
}

func TestGetFormatInfo(t *testing.T) {
	for _, format := range []Format{Arrow, Avro, JSON} {
		info := GetFormatInfo(format)
		require.NotNil(t, info)
		assert.Equal(t, format, info.Format)
		assert.NotEmpty(t, info.FileExtension)
	}
	assert.Nil(t, GetFormatInfo("orc"))
}
