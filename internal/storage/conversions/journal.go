// Package conversions keeps a diagnostics journal of conversion attempts.
package conversions

import (
	"encoding/json"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/vadiminshakov/gowal"
	"go.uber.org/zap"

	"github.com/vadiminshakov/coinconv/internal/domain"
)

const (
	segmentPrefix    = "conversions_"
	segmentThreshold = 1000
	maxSegments      = 100
	eventKeyPrefix   = "conversion_"

	// bounds one EventsAfter call, callers page by the last returned index
	maxEventsPerRead = 256
)

// Journal appends conversion attempts to a WAL and reads them back in order.
type Journal struct {
	wal    *gowal.Wal
	logger *zap.Logger
	mu     sync.RWMutex
}

// Open opens or creates the journal in dir.
func Open(dir string, logger *zap.Logger) (*Journal, error) {
	if dir == "" {
		return nil, errors.New("journal directory is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	wal, err := gowal.NewWAL(gowal.Config{
		Dir:              dir,
		Prefix:           segmentPrefix,
		SegmentThreshold: segmentThreshold,
		MaxSegments:      maxSegments,
		IsInSyncDiskMode: true,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "open conversion journal in %s", dir)
	}

	return &Journal{wal: wal, logger: logger}, nil
}

// Save appends one attempt. The event must carry an id.
func (j *Journal) Save(event domain.ConversionEvent) error {
	if event.ID == "" {
		return errors.New("conversion event id is required")
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "marshal conversion event")
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	return j.wal.Write(j.wal.CurrentIndex()+1, eventKeyPrefix+event.ID, payload)
}

// EventsAfter returns a bounded page of events stored after index, oldest first.
// Entries the WAL can no longer return (rotated out segments) are skipped.
func (j *Journal) EventsAfter(index uint64) ([]domain.ConversionEventRecord, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	last := j.wal.CurrentIndex()
	if last <= index {
		return nil, nil
	}

	var records []domain.ConversionEventRecord
	for idx := index + 1; idx <= last && len(records) < maxEventsPerRead; idx++ {
		key, payload, err := j.wal.Get(idx)
		if err != nil {
			j.logger.Warn("skipping unreadable journal entry", zap.Uint64("index", idx), zap.Error(err))
			continue
		}
		if !strings.HasPrefix(key, eventKeyPrefix) {
			continue
		}

		var event domain.ConversionEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			return nil, errors.Wrapf(err, "decode conversion event at index %d", idx)
		}
		records = append(records, domain.ConversionEventRecord{Index: idx, Event: event})
	}

	return records, nil
}

// Close flushes and closes the WAL.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	return j.wal.Close()
}
