package arff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/arff/pkg/errors"
)

func TestSplitValues(t *testing.T) {
	tests := []struct {
		name string
		line string
		n    int
		want []string
	}{
		{"comma separated", "5.1,3.5,Iris-setosa", 3, []string{"5.1", "3.5", "Iris-setosa"}},
		{"tab separated", "5.1\t3.5", 2, []string{"5.1", "3.5"}},
		{"mixed delimiters", "1\t2,3", 3, []string{"1", "2", "3"}},
		{"spaces around values", "  1 ,  2  ", 2, []string{"1", "2"}},
		{"missing values", "?,?", 2, []string{"?", "?"}},
		{"double quoted keeps delimiter", `"a, b",c`, 2, []string{"a, b", "c"}},
		{"single quoted keeps tab", "'a\tb'", 1, []string{"a\tb"}},
		{"quoted then spaces then delimiter", `'x'   ,y`, 2, []string{"x", "y"}},
		{"quoted then spaces at end", `x,'y'  `, 2, []string{"x", "y"}},
		{"quote of other kind inside", `"it's",1`, 2, []string{"it's", "1"}},
		{"empty quoted value", `'',1`, 2, []string{"", "1"}},
		{"empty unquoted value", "1,,3", 3, []string{"1", "", "3"}},
		{"single value", "42", 1, []string{"42"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := splitValues(tt.line, tt.n)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitValuesErrors(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		n       int
		errType errors.ErrorType
		content string
	}{
		{"too few values", "1", 2, errors.ErrorTypeDataSizeMismatch, ""},
		{"too few after delimiter", "1,", 2, errors.ErrorTypeDataSizeMismatch, ""},
		{"only spaces left", "1,   ", 2, errors.ErrorTypeDataSizeMismatch, ""},
		{"unterminated quote", `1,"abc`, 2, errors.ErrorTypeDataSizeMismatch, ""},
		{"too many values", "1,2,3", 2, errors.ErrorTypeUnrecognisedContent, ",3"},
		{"trailing delimiter", "1,2,", 2, errors.ErrorTypeUnrecognisedContent, ","},
		{"trailing tab", "1\t2\t", 2, errors.ErrorTypeUnrecognisedContent, "\t"},
		{"text after closing quote", `'a'b,c`, 2, errors.ErrorTypeUnrecognisedContent, "b,c"},
		{"no attributes", "1", 0, errors.ErrorTypeUnrecognisedContent, "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := splitValues(tt.line, tt.n)
			require.Error(t, err)
			assert.Equal(t, tt.errType, errors.TypeOf(err))

			var e *errors.Error
			require.True(t, errors.As(err, &e))
			line, _ := e.Detail(DetailLine)
			assert.Equal(t, tt.line, line)
			if tt.content != "" {
				content, _ := e.Detail(DetailContent)
				assert.Equal(t, tt.content, content)
			}
		})
	}
}

// The line must be consumed exactly: each boundary around the last value
func TestSplitValuesLineBoundary(t *testing.T) {
	got, err := splitValues("a,b", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)

	_, err = splitValues("a,b,", 2)
	assert.True(t, errors.IsType(err, errors.ErrorTypeUnrecognisedContent))

	_, err = splitValues("a,b", 3)
	assert.True(t, errors.IsType(err, errors.ErrorTypeDataSizeMismatch))

	got, err = splitValues(`a,"b"`, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)

	_, err = splitValues(`a,"b",`, 2)
	assert.True(t, errors.IsType(err, errors.ErrorTypeUnrecognisedContent))
}
