package stream

import (
	"fmt"
	"io"
	"os"
)

// Source is a seekable byte source over a single video file. A Source is
// opened fresh for every request and must be closed when the request
// completes, handles are never shared or pooled.
type Source struct {
	file *os.File
	size int64
}

// Open opens the file at path and determines its total length by seeking
// to the end. Only regular files can be served, directories and special
// files are rejected here so they surface as a lookup failure.
func Open(path string) (*Source, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, err
	}

	if !info.Mode().IsRegular() {
		_ = file.Close()
		return nil, fmt.Errorf("not a regular file: %s", path)
	}

	size, err := file.Seek(0, io.SeekEnd)
	if err != nil {
		_ = file.Close()
		return nil, err
	}

	return &Source{
		file: file,
		size: size,
	}, nil
}

func (s *Source) Size() int64 {
	return s.size
}

// ReadRange returns exactly the bytes of r. It fails when the file cannot
// supply that many bytes from the requested offset.
func (s *Source) ReadRange(r ByteRange) ([]byte, error) {
	length := r.Length()
	if length <= 0 || r.Start < 0 {
		return nil, fmt.Errorf("invalid range %d-%d", r.Start, r.End)
	}

	if _, err := s.file.Seek(r.Start, io.SeekStart); err != nil {
		return nil, err
	}

	buffer := make([]byte, length)
	if _, err := io.ReadFull(s.file, buffer); err != nil {
		return nil, err
	}

	return buffer, nil
}

// ReadAll loads the entire resource into memory in one pass. Memory use is
// proportional to the file size for every concurrent full-body request.
func (s *Source) ReadAll() ([]byte, error) {
	if s.size == 0 {
		return []byte{}, nil
	}

	return s.ReadRange(ByteRange{Start: 0, End: s.size - 1})
}

func (s *Source) Close() error {
	return s.file.Close()
}
