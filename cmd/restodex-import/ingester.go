// Worker pool for bulk restaurant imports.
// Reader -> channel(record) -> N workers -> restaurant service -> store.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/restodex/internal/domain"
	domrest "github.com/kailas-cloud/restodex/internal/domain/restaurant"
)

// creator is the consumer interface for the restaurant service (ISP).
type creator interface {
	Create(ctx context.Context, p *domrest.Payload) (domrest.Restaurant, error)
}

// record is one decoded payload with its position in the input.
type record struct {
	index   int
	payload *domrest.Payload
}

// ingestResult summarizes an import run.
type ingestResult struct {
	Imported int64
	Invalid  int64
	Failed   int64
	Duration time.Duration
}

type ingester struct {
	svc     creator
	workers int
	logger  *zap.Logger
}

// Run decodes r and creates every record. Validation failures and store
// failures are counted separately; a malformed input stream aborts the run.
func (ing *ingester) Run(ctx context.Context, r io.Reader) (ingestResult, error) {
	workers := ing.workers
	if workers < 1 {
		workers = 1
	}

	records := make(chan record, workers*2)
	var wg sync.WaitGroup
	var imported, invalid, failed atomic.Int64

	start := time.Now()

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for rec := range records {
				_, err := ing.svc.Create(ctx, rec.payload)
				switch {
				case err == nil:
					imported.Add(1)
				case errors.Is(err, domain.ErrValidation):
					invalid.Add(1)
					ing.logger.Warn("record rejected",
						zap.Int("worker", workerID), zap.Int("index", rec.index), zap.Error(err))
				default:
					failed.Add(1)
					ing.logger.Error("record failed",
						zap.Int("worker", workerID), zap.Int("index", rec.index), zap.Error(err))
				}
			}
		}(i)
	}

	readErr := decodeRecords(ctx, r, records)
	close(records)
	wg.Wait()

	return ingestResult{
		Imported: imported.Load(),
		Invalid:  invalid.Load(),
		Failed:   failed.Load(),
		Duration: time.Since(start),
	}, readErr
}

// decodeRecords accepts either a JSON array or a stream of JSON objects (NDJSON).
func decodeRecords(ctx context.Context, r io.Reader, out chan<- record) error {
	br := bufio.NewReader(r)
	first, err := peekNonSpace(br)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	dec := json.NewDecoder(br)
	if first == '[' {
		if _, err := dec.Token(); err != nil {
			return fmt.Errorf("read array start: %w", err)
		}
	}

	for i := 0; dec.More(); i++ {
		var p domrest.Payload
		if err := dec.Decode(&p); err != nil {
			return fmt.Errorf("decode record %d: %w", i, err)
		}
		select {
		case out <- record{index: i, payload: &p}:
		case <-ctx.Done():
			return ctx.Err() //nolint:wrapcheck // cancellation is reported as is
		}
	}
	return nil
}

func peekNonSpace(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return 0, err //nolint:wrapcheck // wrapped by caller
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		}
		if err := br.UnreadByte(); err != nil {
			return 0, err //nolint:wrapcheck // wrapped by caller
		}
		return b, nil
	}
}
