// Package scanner turns a show/quality folder on disk into classified
// media records and folder-level aggregates.
package scanner

import (
	"fmt"
	"hash/crc32"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/xlordnoro/postar/internal/logging"
	"github.com/xlordnoro/postar/internal/naming"
)

// crcChunkSize is the read size for streamed CRC32 computation.
const crcChunkSize = 1 << 20

// mediaExtensions lists the file types that become records. Everything
// else still counts toward the folder's total size.
var mediaExtensions = map[string]bool{
	".mkv": true,
	".rar": true,
	".zip": true,
}

// FolderBatch is one show/quality folder: its classified records plus
// the user-visible aggregates.
type FolderBatch struct {
	Basename       string
	Path           string
	TotalSizeBytes int64
	Records        []naming.MediaRecord
}

// Exists reports whether the folder was present on disk. A missing
// folder is not an error; optional quality tiers are expected to be
// absent.
func (b *FolderBatch) Exists() bool {
	return b.Path != ""
}

// Result carries a scanned batch plus per-file failures. A CRC read
// error drops that record but never aborts the scan of sibling files.
type Result struct {
	Batch        *FolderBatch
	FilesScanned int
	Duration     time.Duration
	Errors       []error
}

// Scanner builds FolderBatches. ShowProgress draws a byte progress bar
// while computing CRCs for files whose names carry none.
type Scanner struct {
	log          *logging.Logger
	ShowProgress bool
}

// New returns a Scanner logging through log. A nil logger discards
// output.
func New(log *logging.Logger) *Scanner {
	if log == nil {
		log = logging.Nop()
	}
	return &Scanner{log: log}
}

// ScanFolder enumerates eligible media files in folder, classifies each
// one, and computes the recursive total size. A folder that does not
// exist yields an empty batch with zero size.
func (s *Scanner) ScanFolder(folder string) *Result {
	start := time.Now()
	result := &Result{
		Batch: &FolderBatch{Basename: filepath.Base(folder)},
	}

	info, err := os.Stat(folder)
	if err != nil || !info.IsDir() {
		s.log.Debug("scanner", "folder missing, treating as empty batch", logging.F("folder", folder))
		result.Duration = time.Since(start)
		return result
	}
	result.Batch.Path = folder

	entries, err := os.ReadDir(folder)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Errorf("read folder %s: %w", folder, err))
		result.Duration = time.Since(start)
		return result
	}

	for _, entry := range entries {
		if entry.IsDir() || !mediaExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("stat %s: %w", entry.Name(), err))
			continue
		}
		result.FilesScanned++

		rec, err := s.buildRecord(folder, entry.Name(), fi.Size())
		if err != nil {
			s.log.Error("scanner", "unable to classify file", err, logging.F("file", entry.Name()))
			result.Errors = append(result.Errors, err)
			continue
		}
		result.Batch.Records = append(result.Batch.Records, rec)
	}

	result.Batch.TotalSizeBytes = s.totalSize(folder)
	result.Duration = time.Since(start)
	return result
}

// buildRecord classifies one filename and resolves its CRC, reading the
// file only when the name carries no bracketed CRC token.
func (s *Scanner) buildRecord(folder, name string, size int64) (naming.MediaRecord, error) {
	c := naming.Classify(name)

	crc, fromName := naming.ExtractCRC(name)
	if !fromName {
		var err error
		crc, err = s.computeCRC32(filepath.Join(folder, name), size)
		if err != nil {
			return naming.MediaRecord{}, fmt.Errorf("crc32 %s: %w", name, err)
		}
	}

	return naming.MediaRecord{
		SeriesKey:     naming.SeriesKey(name),
		Filename:      name,
		SizeBytes:     size,
		EpisodeNumber: c.EpisodeNumber,
		HasEpisode:    c.HasEpisode,
		VersionSuffix: c.VersionSuffix,
		Label:         c.Label,
		Category:      c.Category,
		CRC32:         crc,
		CRCFromName:   fromName,
	}, nil
}

// computeCRC32 streams the file in fixed-size chunks and formats the
// sum as 8-digit uppercase hex, matching the in-name token format.
func (s *Scanner) computeCRC32(path string, size int64) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var w io.Writer
	h := crc32.NewIEEE()
	w = h
	if s.ShowProgress {
		bar := progressbar.DefaultBytes(size, "crc "+filepath.Base(path))
		w = io.MultiWriter(h, bar)
	}

	buf := make([]byte, crcChunkSize)
	if _, err := io.CopyBuffer(w, f, buf); err != nil {
		return "", err
	}
	return fmt.Sprintf("%08X", h.Sum32()), nil
}

// totalSize sums every file under folder recursively, subfolders
// included, matching the user-visible "total download size".
func (s *Scanner) totalSize(folder string) int64 {
	var total int64
	filepath.WalkDir(folder, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if info, err := d.Info(); err == nil {
			total += info.Size()
		}
		return nil
	})
	return total
}
