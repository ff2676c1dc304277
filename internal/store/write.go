package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/roach88/orso/internal/container"
)

// IndexFile reads the container at path with f and records every dataset
// in it. It returns the new ingest id.
//
// Indexing the same file twice creates two ingests; List reports both.
func (s *Store) IndexFile(ctx context.Context, path string, f container.Format) (string, error) {
	datasets, err := container.ReadFile(path, f)
	if err != nil {
		return "", err
	}
	key := f.DatasetKey
	if key == "" {
		key = container.DefaultDatasetKey
	}
	return s.IndexDatasets(ctx, path, key, datasets)
}

// IndexDatasets records datasets as one ingest under path inside a single
// transaction. key names the header field that identifies a dataset.
func (s *Store) IndexDatasets(ctx context.Context, path, key string, datasets []*container.Dataset) (string, error) {
	ingestID := uuid.Must(uuid.NewV7()).String()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("index %s: begin: %w", path, err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM ingests`).Scan(&seq); err != nil {
		return "", fmt.Errorf("index %s: next seq: %w", path, err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO ingests (id, seq, path, dataset_count)
		VALUES (?, ?, ?, ?)
	`, ingestID, seq, path, len(datasets)); err != nil {
		return "", fmt.Errorf("index %s: write ingest: %w", path, err)
	}

	for i, ds := range datasets {
		headerJSON, headerID, err := marshalHeader(ds.Info())
		if err != nil {
			return "", fmt.Errorf("index %s: dataset %d: %w", path, i, err)
		}
		columns, err := marshalLabels(ds.Info().ColumnLabels())
		if err != nil {
			return "", fmt.Errorf("index %s: dataset %d: %w", path, i, err)
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO datasets
			(ingest_id, position, data_set, header_id, header, columns, row_count, column_count)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`,
			ingestID,
			i,
			datasetName(ds.Info(), key),
			headerID,
			headerJSON,
			columns,
			ds.Data().Rows(),
			ds.Data().Cols(),
		); err != nil {
			return "", fmt.Errorf("index %s: dataset %d: %w", path, i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("index %s: commit: %w", path, err)
	}
	slog.Debug("file indexed", "path", path, "ingest", ingestID, "seq", seq, "datasets", len(datasets))
	return ingestID, nil
}
