package store

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// Sweep removes expired documents from s and deletes their files.
// It returns the number of documents removed.
func Sweep(ctx context.Context, s Store, now time.Time, log logrus.FieldLogger) (int, error) {
	expired, err := s.Expired(ctx, now)
	for _, doc := range expired {
		if rmErr := os.Remove(doc.Path); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			log.WithError(rmErr).WithField("id", doc.ID).Warn("failed to remove expired document file")
		}
	}
	return len(expired), err
}

// Janitor runs Sweep every interval until ctx is cancelled.
func Janitor(ctx context.Context, s Store, interval time.Duration, log logrus.FieldLogger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := Sweep(ctx, s, now, log)
			if err != nil {
				log.WithError(err).Error("document sweep failed")
			}
			if n > 0 {
				log.WithField("count", n).Info("expired documents removed")
			}
		}
	}
}
