package dlog

import (
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"
)

// rotatingFile is an io.Writer whose backing file can be swapped out while
// writers keep logging through it.
type rotatingFile struct {
	mu   sync.Mutex
	file *os.File
	path string
}

func openRotatingFile(path string) (*rotatingFile, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0600)
	if err != nil {
		return nil, err
	}
	return &rotatingFile{file: file, path: path}, nil
}

func (r *rotatingFile) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.file.Write(p)
}

// rotate moves the current file to dest and reopens a fresh one at the
// original path. Writes block for the duration instead of being buffered.
func (r *rotatingFile) rotate(dest string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.file.Close(); err != nil {
		return err
	}
	if err := os.Rename(r.path, dest); err != nil {
		return err
	}
	file, err := os.OpenFile(r.path, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0600)
	if err != nil {
		return err
	}
	r.file = file
	return nil
}

type Archiver struct {
	File *rotatingFile
	Dir  string
}

func (a *Archiver) Process() {
	Log.Info("Started archive process")
	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")

	archiveDir := filepath.Join(a.Dir, yesterday)

	tmp := archiveDir
	counter := 1
	err := os.Mkdir(archiveDir, 0755)
	for os.IsExist(err) {
		archiveDir = tmp + "-" + strconv.Itoa(counter)
		counter++
		err = os.Mkdir(archiveDir, 0755)
	}
	if err != nil {
		Log.Error("Failed to create archive directory", "dir", archiveDir, "err", err)
		return
	}

	dest := filepath.Join(archiveDir, filepath.Base(a.File.path))
	if err := a.File.rotate(dest); err != nil {
		Log.Error("Failed to rotate log file", "dest", dest, "err", err)
		return
	}
	Log.Info("Archived log file", "dest", dest)
}
