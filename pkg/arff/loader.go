package arff

import (
	"context"
	"io"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/ajitpratap0/arff/pkg/compression"
	"github.com/ajitpratap0/arff/pkg/config"
	"github.com/ajitpratap0/arff/pkg/errors"
	"github.com/ajitpratap0/arff/pkg/logger"
	"github.com/ajitpratap0/arff/pkg/metrics"
	"github.com/ajitpratap0/arff/pkg/observability"
)

// Loader opens ARFF inputs as streams or batches
type Loader struct {
	config  *config.LoaderConfig
	logger  *zap.Logger
	metrics *metrics.Collector
}

// NewLoader creates a loader. A nil cfg uses config.NewLoaderConfig and a
// nil log uses the global logger.
func NewLoader(cfg *config.LoaderConfig, log *zap.Logger) *Loader {
	if cfg == nil {
		cfg = config.NewLoaderConfig()
	}
	if log == nil {
		log = logger.Get()
	}
	return &Loader{
		config:  cfg,
		logger:  log.With(zap.String("component", "arff_loader")),
		metrics: metrics.NewCollector(cfg.Metrics.Enabled),
	}
}

// Load reads filename with the default loader. With batch set every row is
// parsed before Load returns and the result is a *Batch; otherwise it is a
// *Stream the caller must drain or Close.
func Load(ctx context.Context, filename string, batch bool) (Dataset, error) {
	return NewLoader(nil, nil).Load(ctx, filename, batch)
}

// Load reads filename as a *Batch or a *Stream
func (l *Loader) Load(ctx context.Context, filename string, batch bool) (Dataset, error) {
	if batch {
		b, err := l.LoadBatch(ctx, filename)
		if err != nil {
			return nil, err
		}
		return b, nil
	}
	s, err := l.LoadStream(ctx, filename)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// LoadStream parses the header of filename and returns a stream over its
// data section
func (l *Loader) LoadStream(ctx context.Context, filename string) (*Stream, error) {
	ctx = logger.WithFile(ctx, filename)
	ctx, span := observability.NewSpan(ctx, "arff.load")
	defer span.End()
	span.SetAttribute("arff.file", filename)
	span.SetAttribute("arff.batch", false)

	src, err := l.open(filename)
	if err != nil {
		span.Fail(err)
		return nil, l.failed(ctx, err)
	}
	s, err := l.stream(ctx, src, metrics.ModeStream)
	if err != nil {
		span.Fail(err)
		return nil, err
	}
	return s, nil
}

// LoadBatch parses all of filename into a batch
func (l *Loader) LoadBatch(ctx context.Context, filename string) (*Batch, error) {
	ctx = logger.WithFile(ctx, filename)
	ctx, span := observability.NewSpan(ctx, "arff.load")
	defer span.End()
	span.SetAttribute("arff.file", filename)
	span.SetAttribute("arff.batch", true)

	src, err := l.open(filename)
	if err != nil {
		span.Fail(err)
		return nil, l.failed(ctx, err)
	}
	b, err := l.batch(ctx, src)
	if err != nil {
		span.Fail(err)
		return nil, err
	}
	span.SetAttribute("arff.rows", b.NumRows())
	return b, nil
}

// Parse reads an ARFF document from r. r is not closed.
func (l *Loader) Parse(ctx context.Context, r io.Reader, batch bool) (Dataset, error) {
	ctx, span := observability.NewSpan(ctx, "arff.load")
	defer span.End()
	span.SetAttribute("arff.batch", batch)

	src := NewReaderLineSource(r)
	if batch {
		b, err := l.batch(ctx, src)
		if err != nil {
			span.Fail(err)
			return nil, err
		}
		return b, nil
	}
	s, err := l.stream(ctx, src, metrics.ModeStream)
	if err != nil {
		span.Fail(err)
		return nil, err
	}
	return s, nil
}

func (l *Loader) open(filename string) (LineSource, error) {
	alg, err := compression.ParseAlgorithm(l.config.Compression)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "invalid input compression")
	}
	if l.config.MemoryMap && compression.Resolve(alg, filename) == compression.None {
		return OpenMappedFile(filename)
	}
	return OpenFile(filename, alg)
}

// stream parses the header section of src. src is closed on failure.
func (l *Loader) stream(ctx context.Context, src LineSource, mode string) (*Stream, error) {
	log := logger.FromContext(ctx, l.logger)
	timer := metrics.NewTimer("header")

	_, span := observability.NewSpan(ctx, "arff.header")
	defer span.End()

	scanner := &sectionScanner{src: src, metrics: l.metrics, logger: log}
	name, headers, err := scanner.parseHeader()
	if err != nil {
		_ = src.Close()
		span.Fail(err)
		return nil, l.failed(ctx, err)
	}

	span.SetAttribute("arff.relation", name)
	span.SetAttribute("arff.attributes", headers.Len())
	span.AddEvent("data section", attribute.Int("arff.line", src.LineNumber()))
	fields := []zap.Field{
		zap.String("relation", name),
		zap.Int("attributes", headers.Len()),
		zap.Int("data_line", src.LineNumber()),
		zap.Duration("duration", timer.Stop()),
	}
	if mode == metrics.ModeStream {
		l.metrics.ObserveLoad(mode, timer.Stop())
		log.Info("opened relation stream", append(fields, zap.String("mode", mode))...)
	} else {
		log.Debug("parsed header", fields...)
	}

	return newStream(name, headers, src, l.metrics, log.With(zap.String("relation", name))), nil
}

func (l *Loader) batch(ctx context.Context, src LineSource) (*Batch, error) {
	timer := metrics.NewTimer("batch")

	s, err := l.stream(ctx, src, metrics.ModeBatch)
	if err != nil {
		return nil, err
	}

	ctx, span := observability.NewSpan(ctx, "arff.batch")
	defer span.End()

	b, err := NewBatch(ctx, s)
	if err != nil {
		span.Fail(err)
		return nil, err
	}

	span.SetAttribute("arff.rows", b.NumRows())
	l.metrics.ObserveLoad(metrics.ModeBatch, timer.Stop())
	logger.FromContext(ctx, l.logger).Info("loaded relation",
		zap.String("relation", b.Name()),
		zap.Int("attributes", b.NumColumns()),
		zap.Int("rows", b.NumRows()),
		zap.String("mode", metrics.ModeBatch),
		zap.Duration("duration", timer.Stop()))
	return b, nil
}

// failed records a load failure outside the data section
func (l *Loader) failed(ctx context.Context, err error) error {
	errType := errors.TypeOf(err)
	l.metrics.ParseError(string(errType))
	fields := []zap.Field{zap.String("error_type", string(errType)), zap.Error(err)}
	if n, ok := LineNumber(err); ok {
		fields = append(fields, zap.Int("line_number", n))
	}
	logger.FromContext(ctx, l.logger).Error("failed to load relation", fields...)
	return err
}
