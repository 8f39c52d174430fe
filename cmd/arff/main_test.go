package main

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/arff/pkg/compression"
	jsonpool "github.com/ajitpratap0/arff/pkg/json"
	"github.com/ajitpratap0/arff/pkg/testutil"
)

var irisPath = filepath.Join("..", "..", "pkg", "arff", "testdata", "iris.arff")

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCommand()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(append(args, "--log-level", "error"))
	err := root.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "arff v"+version)
}

func TestInspect(t *testing.T) {
	out, err := run(t, "inspect", irisPath)
	require.NoError(t, err)
	assert.Contains(t, out, "relation:   iris\n")
	assert.Contains(t, out, "rows:       150\n")
	assert.Contains(t, out, "[4] class (nominal) missing=0\n")
	assert.Contains(t, out, "    Iris-setosa: 50\n")
}

func TestInspectJSON(t *testing.T) {
	out, err := run(t, "inspect", "--json", "--batch", irisPath)
	require.NoError(t, err)

	var summary relationSummary
	require.NoError(t, jsonpool.Unmarshal([]byte(out), &summary))
	assert.Equal(t, "iris", summary.Relation)
	assert.Equal(t, 150, summary.Rows)
	require.Len(t, summary.Attributes, 5)

	sepal := summary.Attributes[0]
	assert.Equal(t, "sepallength", sepal.Name)
	require.NotNil(t, sepal.Min)
	assert.Equal(t, 4.3, *sepal.Min)
	assert.Equal(t, 7.9, *sepal.Max)

	class := summary.Attributes[4]
	assert.Nil(t, class.Min)
	assert.Equal(t, map[string]int{"Iris-setosa": 50, "Iris-versicolor": 50, "Iris-virginica": 50}, class.Counts)
}

func TestHead(t *testing.T) {
	out, err := run(t, "head", "-n", "2", irisPath)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "@relation iris\n"))
	assert.Contains(t, out, "@attribute class {Iris-setosa,Iris-versicolor,Iris-virginica}\n")
	assert.True(t, strings.HasSuffix(out, "@data\n5.1,3.5,1.4,0.2,Iris-setosa\n4.9,3,1.4,0.2,Iris-setosa\n"), out)
}

func TestExportCompressedJSON(t *testing.T) {
	testutil.IntegrationTest(t)
	output := filepath.Join(t.TempDir(), "iris.jsonl.gz")
	_, err := run(t, "export", irisPath, "--format", "json", "-o", output)
	require.NoError(t, err)

	f, err := os.Open(output)
	require.NoError(t, err)
	defer f.Close()
	r, err := compression.NewReader(f, compression.Gzip)
	require.NoError(t, err)
	defer r.Close()

	scanner := bufio.NewScanner(r)
	lines := 0
	for scanner.Scan() {
		if lines == 0 {
			assert.Equal(t, `{"sepallength":5.1,"sepalwidth":3.5,"petallength":1.4,"petalwidth":0.2,"class":"Iris-setosa"}`, scanner.Text())
		}
		lines++
	}
	require.NoError(t, scanner.Err())
	assert.Equal(t, 150, lines)
}

func TestExportFormatFromEnv(t *testing.T) {
	t.Setenv("ARFF_EXPORT_FORMAT", "avro")
	t.Setenv("ARFF_EXPORT_COMPRESSION", "deflate")

	out, err := run(t, "export", irisPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Obj\x01"))
}

func TestExportFromConfigFile(t *testing.T) {
	testutil.IntegrationTest(t)
	dir := t.TempDir()
	output := filepath.Join(dir, "iris.arrow")
	cfgPath := testutil.WriteFile(t, dir, "arff.yaml", "export:\n  format: arrow\n  output: "+output+"\n")

	_, err := run(t, "export", "--config", cfgPath, irisPath)
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("ARROW1")))
}

func TestLoadFailureIsReported(t *testing.T) {
	bad := testutil.WriteFile(t, t.TempDir(), "bad.arff", "@relation r\n@attribute x numeric\n@data\n1\npurple\n")

	_, err := run(t, "inspect", bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 5")

	_, err = run(t, "inspect", filepath.Join(t.TempDir(), "absent.arff"))
	assert.Error(t, err)
}

func TestInvalidConfigIsRejected(t *testing.T) {
	_, err := run(t, "inspect", "--compression", "brotli", irisPath)
	assert.Error(t, err)
}
