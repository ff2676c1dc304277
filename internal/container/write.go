package container

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/roach88/orso/internal/diff"
	"github.com/roach88/orso/internal/doc"
	"github.com/roach88/orso/internal/header"
)

// WriteFile creates (or truncates) path and writes datasets to it.
func WriteFile(path string, f Format, datasets ...*Dataset) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return Write(file, f, datasets...)
}

// Write encodes datasets as one container.
//
// The first dataset's header is written in full. Every later header is
// written as its diff against the first, with the dataset key forced to the
// front even when unchanged. Keys present in the first header but missing
// from a later one cannot be expressed and reappear on read.
func Write(w io.Writer, f Format, datasets ...*Dataset) error {
	if err := f.check(); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, MagicLine(f.version())); err != nil {
		return err
	}

	key := f.datasetKey()
	var first *doc.Map
	for i, ds := range datasets {
		m := header.ToDict(ds.info)

		block := m
		if i == 0 {
			first = m
		} else {
			if _, err := fmt.Fprintln(bw, commentMarker+boundaryLine); err != nil {
				return err
			}
			block = diff.Diff(first, m)
			if v, ok := m.Get(key); ok {
				block.SetFirst(key, v)
			}
		}

		if err := writeHeaderBlock(bw, block); err != nil {
			return fmt.Errorf("dataset %d: %w", i, err)
		}
		if _, err := fmt.Fprintln(bw, commentMarker+ColumnHeader(ds.info.ColumnLabels())); err != nil {
			return err
		}
		for r := 0; r < ds.data.Rows(); r++ {
			if _, err := fmt.Fprintln(bw, FormatRow(ds.data.Row(r))); err != nil {
				return err
			}
		}
		slog.Debug("dataset encoded", "index", i, "header_keys", block.Len(), "rows", ds.data.Rows())
	}

	return bw.Flush()
}
