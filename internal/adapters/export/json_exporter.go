// Package export writes library statistics to JSON files.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"
	"github.com/tidwall/pretty"

	"github.com/jsamuelsen/library-ledger/internal/domain"
	"github.com/jsamuelsen/library-ledger/internal/platform/preflight"
	"github.com/jsamuelsen/library-ledger/internal/ports"
)

// DefaultPath is used when neither the caller nor the config names a file.
const DefaultPath = "stats.json"

const filePerm = 0o644

// Titles are written as given; <, > and & are not HTML-escaped.
var json = jsoniter.Config{
	EscapeHTML:             false,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
}.Froze()

// Every array is expanded onto its own lines, four spaces per level.
var layout = &pretty.Options{
	Width:  0,
	Prefix: "",
	Indent: "    ",
}

// statisticsDocument is the on-disk layout. Each most_popular entry is a
// two-element [title, count] array.
type statisticsDocument struct {
	MostPopular          [][]any `json:"most_popular"`
	ReturnRate           float64 `json:"return_rate"`
	AverageReadTimeHours float64 `json:"average_read_time_hours"`
}

// MarshalStatistics renders stats as indented UTF-8 JSON ending in a newline.
func MarshalStatistics(stats domain.Statistics) ([]byte, error) {
	doc := statisticsDocument{
		MostPopular:          make([][]any, 0, len(stats.MostPopular)),
		ReturnRate:           stats.ReturnRate,
		AverageReadTimeHours: stats.AverageReadTimeHours,
	}
	for _, p := range stats.MostPopular {
		doc.MostPopular = append(doc.MostPopular, []any{p.Title, p.Count})
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding statistics: %w", err)
	}

	return pretty.PrettyOptions(raw, layout), nil
}

// Config configures a JSONExporter.
type Config struct {
	// DefaultPath is written when Export is called with an empty path.
	DefaultPath string
	Logger      *slog.Logger
}

// JSONExporter writes statistics files atomically: a reader never sees a
// partially written file.
type JSONExporter struct {
	defaultPath string
	logger      *slog.Logger
}

var (
	_ ports.StatisticsExporter = (*JSONExporter)(nil)
	_ ports.HealthChecker      = (*JSONExporter)(nil)
)

// NewJSONExporter creates an exporter.
func NewJSONExporter(cfg Config) *JSONExporter {
	e := &JSONExporter{
		defaultPath: cfg.DefaultPath,
		logger:      cfg.Logger,
	}
	if e.defaultPath == "" {
		e.defaultPath = DefaultPath
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}

	return e
}

// Export writes stats to path, or to the default path when path is empty.
// An existing file is replaced.
func (e *JSONExporter) Export(ctx context.Context, stats domain.Statistics, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if path == "" {
		path = e.defaultPath
	}

	data, err := MarshalStatistics(stats)
	if err != nil {
		return err
	}

	if err := writeFileAtomic(path, data); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	e.logger.DebugContext(ctx, "statistics file written",
		slog.String("path", path),
		slog.Int("bytes", len(data)),
	)

	return nil
}

// Name implements ports.HealthChecker.
func (e *JSONExporter) Name() string {
	return "stats-export"
}

// Check verifies that the directory of the default path accepts new files.
func (e *JSONExporter) Check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return preflight.WritableDir(filepath.Dir(e.defaultPath))
}

func writeFileAtomic(path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Chmod(filePerm); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}
