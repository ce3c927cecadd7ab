package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Rotator is an io.Writer over a file that is rotated once it would grow
// past MaxSize bytes. Rotated files are kept as Filename.1 .. Filename.N,
// .1 being the newest.
type Rotator struct {
	Filename   string
	MaxSize    int64
	MaxBackups int

	mu   sync.Mutex
	file *os.File
	size int64
}

func NewRotator(filename string, maxSizeMB int64, maxBackups int) *Rotator {
	return &Rotator{
		Filename:   filename,
		MaxSize:    maxSizeMB * 1024 * 1024,
		MaxBackups: maxBackups,
	}
}

func (r *Rotator) open() error {
	if err := os.MkdirAll(filepath.Dir(r.Filename), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(r.Filename, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return err
	}
	r.file = f
	r.size = info.Size()
	return nil
}

func (r *Rotator) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		if err := r.open(); err != nil {
			return 0, err
		}
	}
	if r.MaxSize > 0 && r.size > 0 && r.size+int64(len(p)) > r.MaxSize {
		if err := r.rotate(); err != nil {
			fmt.Fprintf(os.Stderr, "log rotation failed: %v\n", err)
		}
	}

	n, err := r.file.Write(p)
	r.size += int64(n)
	return n, err
}

// rotate shifts the backups up by one, moves the live file to .1 and
// starts a new one. The oldest backup beyond MaxBackups is dropped.
func (r *Rotator) rotate() error {
	if err := r.file.Close(); err != nil {
		return err
	}
	r.file = nil

	if r.MaxBackups > 0 {
		_ = os.Remove(fmt.Sprintf("%s.%d", r.Filename, r.MaxBackups))
		for i := r.MaxBackups - 1; i >= 1; i-- {
			old := fmt.Sprintf("%s.%d", r.Filename, i)
			if _, err := os.Stat(old); err != nil {
				continue
			}
			_ = os.Rename(old, fmt.Sprintf("%s.%d", r.Filename, i+1))
		}
		if err := os.Rename(r.Filename, r.Filename+".1"); err != nil {
			return err
		}
	} else if err := os.Remove(r.Filename); err != nil {
		return err
	}
	return r.open()
}

func (r *Rotator) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}
