package arff

// Section keywords
const (
	RelationKeyword  = "@relation"
	AttributeKeyword = "@attribute"
	DataKeyword      = "@data"
)

// Attribute type keywords
const (
	NumericKeyword    = "numeric"
	IntegerKeyword    = "integer"
	RealKeyword       = "real"
	StringKeyword     = "string"
	DateKeyword       = "date"
	RelationalKeyword = "relational"
)

const (
	// MissingValueSymbol marks a missing value in the data section
	MissingValueSymbol = "?"
	// CommentSymbol starts a comment line
	CommentSymbol = "%"
)

// typeKeywords are the attribute types the type grammar recognizes
var typeKeywords = []string{
	NumericKeyword,
	IntegerKeyword,
	RealKeyword,
	StringKeyword,
	DateKeyword,
	RelationalKeyword,
}

func isQuote(c byte) bool {
	return c == '"' || c == '\''
}

func isDataDelimiter(c byte) bool {
	return c == '\t' || c == ',' || c == '\n'
}
