package s3fs

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
)

type file struct {
	reader *bytes.Reader
	info   fileInfo
}

func (f *file) Stat() (fs.FileInfo, error) { return f.info, nil }
func (f *file) Read(p []byte) (int, error)  { return f.reader.Read(p) }
func (f *file) Close() error                { return nil }

func (f *file) Seek(offset int64, whence int) (int64, error) {
	return f.reader.Seek(offset, whence)
}

type dir struct {
	entries []fs.DirEntry
	info    fileInfo
	offset  int
}

func (d *dir) Stat() (fs.FileInfo, error) { return d.info, nil }
func (d *dir) Close() error               { return nil }

func (d *dir) Read([]byte) (int, error) {
	return 0, &fs.PathError{Op: "read", Path: d.info.name, Err: errors.New("is a directory")}
}

// ReadDir implements fs.ReadDirFile.
func (d *dir) ReadDir(n int) ([]fs.DirEntry, error) {
	rest := d.entries[d.offset:]
	if n <= 0 {
		d.offset = len(d.entries)
		return rest, nil
	}
	if len(rest) == 0 {
		return nil, io.EOF
	}
	n = min(n, len(rest))
	d.offset += n
	return rest[:n], nil
}
