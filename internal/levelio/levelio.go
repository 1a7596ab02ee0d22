// Package levelio выгружает сгенерированные уровни для отладки и просмотра.
// Формат: zstd-поток, внутри JSON-строка заголовка и по одной JSON-строке на уровень.
package levelio

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/annel0/voxel-layout/internal/episode"
	"github.com/klauspost/compress/zstd"
)

const (
	formatName    = "voxel-layout"
	formatVersion = 1
)

// ErrBadHeader поток не является выгрузкой уровней
var ErrBadHeader = errors.New("levelio: bad header")

// Header первая строка выгрузки
type Header struct {
	Format  string `json:"format"`
	Version int    `json:"version"`
}

// Writer пишет уровни в сжатый поток
type Writer struct {
	enc *zstd.Encoder
	bw  *bufio.Writer
	je  *json.Encoder
	n   int
}

// NewWriter создаёт писатель и сразу записывает заголовок
func NewWriter(w io.Writer) (*Writer, error) {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, err
	}

	bw := bufio.NewWriterSize(enc, 64*1024)
	lw := &Writer{enc: enc, bw: bw, je: json.NewEncoder(bw)}

	if err := lw.je.Encode(Header{Format: formatName, Version: formatVersion}); err != nil {
		enc.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}
	return lw, nil
}

// Write добавляет уровень
func (w *Writer) Write(level *episode.Level) error {
	if err := w.je.Encode(level); err != nil {
		return fmt.Errorf("encode level %d: %w", w.n, err)
	}
	w.n++
	return nil
}

// Count число записанных уровней
func (w *Writer) Count() int {
	return w.n
}

// Close дописывает буфер и завершает zstd-кадр. Нижний writer не закрывается.
func (w *Writer) Close() error {
	if err := w.bw.Flush(); err != nil {
		w.enc.Close()
		return err
	}
	return w.enc.Close()
}

// ReadAll читает все уровни из потока
func ReadAll(r io.Reader) ([]*episode.Level, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	jd := json.NewDecoder(bufio.NewReaderSize(dec, 64*1024))

	var h Header
	if err := jd.Decode(&h); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadHeader, err)
	}
	if h.Format != formatName || h.Version != formatVersion {
		return nil, fmt.Errorf("%w: %s v%d", ErrBadHeader, h.Format, h.Version)
	}

	var levels []*episode.Level
	for {
		var level episode.Level
		err := jd.Decode(&level)
		if errors.Is(err, io.EOF) {
			return levels, nil
		}
		if err != nil {
			return levels, fmt.Errorf("decode level %d: %w", len(levels), err)
		}
		levels = append(levels, &level)
	}
}

// WriteFile записывает уровни в файл, создавая каталог при необходимости
func WriteFile(path string, levels []*episode.Level) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	w, err := NewWriter(f)
	if err != nil {
		return err
	}
	for _, level := range levels {
		if err := w.Write(level); err != nil {
			w.Close()
			return err
		}
	}
	if err := w.Close(); err != nil {
		return err
	}
	return f.Close()
}

// ReadFile читает уровни из файла
func ReadFile(path string) ([]*episode.Level, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadAll(f)
}
