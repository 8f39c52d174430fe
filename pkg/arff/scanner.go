package arff

import (
	"strings"

	"go.uber.org/zap"

	"github.com/ajitpratap0/arff/pkg/dataset"
	"github.com/ajitpratap0/arff/pkg/errors"
	"github.com/ajitpratap0/arff/pkg/metrics"
)

// sectionScanner walks the header section of one input
type sectionScanner struct {
	src     LineSource
	metrics *metrics.Collector
	logger  *zap.Logger
}

// readTillFound returns the first line containing any of keywords, ignoring
// case. Blank lines, comment lines and lines without a keyword are skipped.
func (s *sectionScanner) readTillFound(keywords ...string) (string, error) {
	lowered := make([]string, len(keywords))
	for i, kw := range keywords {
		lowered[i] = strings.ToLower(kw)
	}

	for {
		line, ok := s.src.Next()
		if !ok {
			break
		}
		if isWhitespaceOnly(line) || isCommentLine(line) {
			s.metrics.LineSkipped(metrics.SectionHeader)
			continue
		}

		search := strings.ToLower(line)
		for _, kw := range lowered {
			if strings.Contains(search, kw) {
				return line, nil
			}
		}

		s.metrics.LineSkipped(metrics.SectionHeader)
		s.logger.Debug("skipping header line without keyword",
			zap.Int("line_number", s.src.LineNumber()),
			zap.Strings("keywords", keywords))
	}

	if err := s.src.Err(); err != nil {
		return "", errors.Wrap(err, errors.ErrorTypeFile, "failed to read ARFF input")
	}
	return "", keywordsNotFoundError(keywords)
}

// parseHeader reads the relation and attribute sections, leaving the
// source positioned after the @data line
func (s *sectionScanner) parseHeader() (string, *dataset.Headers, error) {
	line, err := s.readTillFound(RelationKeyword)
	if err != nil {
		return "", nil, err
	}
	name, err := parseRelationLine(line)
	if err != nil {
		return "", nil, atLine(err, s.src.LineNumber(), line)
	}

	builder := dataset.NewHeadersBuilder()
	for {
		line, err := s.readTillFound(AttributeKeyword, DataKeyword)
		if err != nil {
			return "", nil, err
		}
		if hasPrefixFold(line, DataKeyword) {
			break
		}

		attrName, typ, err := parseAttribute(line)
		if err != nil {
			return "", nil, atLine(err, s.src.LineNumber(), line)
		}
		if err := builder.Append(attrName, typ); err != nil {
			return "", nil, atLine(err, s.src.LineNumber(), line)
		}
		s.logger.Debug("parsed attribute",
			zap.String("attribute", attrName),
			zap.String("type", typ.Name()),
			zap.Int("index", builder.Len()-1))
	}

	return name, builder.Freeze(), nil
}
