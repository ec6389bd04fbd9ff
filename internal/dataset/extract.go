// Package dataset acquires the benchmark dataset: fetching the archive
// from object storage and unpacking it into the data directory.
package dataset

import (
	"archive/tar"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Extract unpacks a local tar archive (plain or gzip-compressed) into
// dataDir, skipping entries whose base name starts with a period. It
// returns the number of entries written.
func Extract(tarPath, dataDir string) (int, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return 0, fmt.Errorf("failed to create data directory %s: %w", dataDir, err)
	}
	f, err := os.Open(tarPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open archive %s: %w", tarPath, err)
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.HasSuffix(tarPath, ".gz") || strings.HasSuffix(tarPath, ".tgz") {
		gz, gzErr := gzip.NewReader(f)
		if gzErr != nil {
			return 0, fmt.Errorf("failed to open gzip stream %s: %w", tarPath, gzErr)
		}
		defer gz.Close()
		reader = gz
	}

	slog.Info("extracting archive", "archive", tarPath, "data_dir", dataDir)
	extracted := 0
	skipped := 0
	tr := tar.NewReader(reader)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return extracted, fmt.Errorf("failed to read archive %s: %w", tarPath, err)
		}
		if strings.HasPrefix(filepath.Base(hdr.Name), ".") {
			skipped++
			continue
		}
		target, err := securePath(dataDir, hdr.Name)
		if err != nil {
			return extracted, err
		}
		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return extracted, fmt.Errorf("failed to create directory %s: %w", target, err)
			}
		case tar.TypeReg:
			if err := writeEntry(target, tr, hdr); err != nil {
				return extracted, err
			}
			extracted++
		default:
			skipped++
		}
	}
	slog.Info("extraction complete", "extracted", extracted, "skipped", skipped)
	return extracted, nil
}

// securePath joins an archive entry name under root and rejects entries
// that would escape it.
func securePath(root, name string) (string, error) {
	target := filepath.Join(root, filepath.Clean(name))
	if !strings.HasPrefix(target, filepath.Clean(root)+string(os.PathSeparator)) {
		return "", fmt.Errorf("archive entry %q escapes the data directory", name)
	}
	return target, nil
}

func writeEntry(target string, r io.Reader, hdr *tar.Header) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", target, err)
	}
	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, os.FileMode(hdr.Mode).Perm())
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", target, err)
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return fmt.Errorf("failed to write %s: %w", target, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", target, err)
	}
	return nil
}
