package catalog

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// fileLoader implements Loader for reading gzipped catalogue files from the
// local file system.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based catalogue loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "catalog-loader").Logger(),
	}
}

// Load reads a gzipped catalogue file with one JSON record per line.
func (l *fileLoader) Load(ctx context.Context, source string) ([]Record, error) {
	l.logger.Info().Str("file", source).Msg("loading catalogue file")

	file, err := os.Open(source)
	if err != nil {
		l.logger.Error().Err(err).Str("file", source).Msg("failed to open catalogue file")
		return nil, fmt.Errorf("failed to open catalogue file %s: %w", source, err)
	}
	defer file.Close()

	gzipReader, err := gzip.NewReader(file)
	if err != nil {
		l.logger.Error().Err(err).Str("file", source).Msg("failed to create gzip reader")
		return nil, fmt.Errorf("failed to create gzip reader for %s: %w", source, err)
	}
	defer gzipReader.Close()

	records, err := decodeRecords(ctx, gzipReader, source)
	if err != nil {
		l.logger.Error().Err(err).Str("file", source).Msg("failed to decode catalogue file")
		return nil, err
	}

	l.logger.Info().
		Str("file", source).
		Int("records", len(records)).
		Msg("catalogue file loaded successfully")

	return records, nil
}

// decodeRecords reads JSON-lines catalogue records from r. Blank lines are
// skipped; a malformed line aborts the load.
func decodeRecords(ctx context.Context, r interface{ Read([]byte) (int, error) }, source string) ([]Record, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var records []Record
	lineNo := 0
	for scanner.Scan() {
		lineNo++

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var record Record
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			return nil, fmt.Errorf("invalid catalogue record at %s line %d: %w", source, lineNo, err)
		}
		records = append(records, record)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading catalogue file %s: %w", source, err)
	}

	return records, nil
}
