package logging

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Log files are named after the session start time; a numeric suffix keeps
// names unique when two sessions start within the same second.
const filenameLayout = "2006-01-02-15.04.05"

// Setup opens a fresh log file for this session, mirrors all logrus output
// into it, and deletes expired files from previous sessions. The returned
// closer owns the file handle.
func Setup(dir string, maxAge time.Duration) (io.Closer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.WithMessage(err, "cant create logs directory")
	}

	file, err := openUnique(dir, time.Now())
	if err != nil {
		return nil, errors.WithMessage(err, "cant open session log file")
	}

	pruneExpired(dir, maxAge)

	log.AddHook(&fileHook{
		out: file,
		formatter: &log.TextFormatter{
			DisableColors:    true,
			FullTimestamp:    true,
			TimestampFormat:  "2006-01-02 15:04:05",
			QuoteEmptyFields: true,
		},
	})
	return file, nil
}

func openUnique(dir string, now time.Time) (*os.File, error) {
	prefix := now.Format(filenameLayout)
	for i := 0; ; i++ {
		name := prefix + ".txt"
		if i > 0 {
			name = fmt.Sprintf("%s_(%d).txt", prefix, i)
		}
		file, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err == nil {
			return file, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, err
		}
	}
}

func pruneExpired(dir string, maxAge time.Duration) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.WithError(err).Warn("cant read logs directory for pruning")
		return
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".txt") {
			continue
		}
		stem := strings.TrimSuffix(name, ".txt")
		prefix, _, _ := strings.Cut(stem, "_")
		startedAt, err := time.Parse(filenameLayout, prefix)
		if err != nil {
			log.Warnf("logs directory contains a problematic filename: %s", name)
			continue
		}
		if time.Since(startedAt) >= maxAge {
			log.Infof("removing expired log file: %s", name)
			if err := os.Remove(filepath.Join(dir, name)); err != nil {
				log.WithError(err).Warnf("cant remove expired log file: %s", name)
			}
		}
	}
}

type fileHook struct {
	out       io.Writer
	formatter log.Formatter
	mutex     sync.Mutex
}

func (h *fileHook) Levels() []log.Level {
	return log.AllLevels
}

func (h *fileHook) Fire(entry *log.Entry) error {
	line, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}
	h.mutex.Lock()
	defer h.mutex.Unlock()
	_, err = h.out.Write(line)
	return err
}
