// =============================================================================
// CSV to XLSX Converter - File Manager Utility
// =============================================================================
//
// This module provides the file utilities used around the conversion:
//   - Output file naming
//   - Atomic replacement of the output file
//   - Small file inspection helpers
//
// ATOMIC REPLACEMENT:
//   The workbook is first written to a hidden temporary file next to the
//   destination, named with a random UUID. Only a complete file is renamed
//   over the destination, so a failed run never leaves a truncated
//   workbook behind and never clobbers a previous good one.
//
// =============================================================================

package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// OutputExtension is appended to every output prefix.
const OutputExtension = ".xlsx"

// =============================================================================
// OUTPUT FILE NAMING
// =============================================================================

// OutputFileName returns the output file name for a prefix.
//
// The extension is always appended, even if the prefix already carries
// something that looks like one:
//   "report"      -> "report.xlsx"
//   "report.csv"  -> "report.csv.xlsx"
//   "report.xlsx" -> "report.xlsx.xlsx"
func OutputFileName(prefix string) string {
	return prefix + OutputExtension
}

// =============================================================================
// ATOMIC WRITE
// =============================================================================

// WriteFileAtomic creates dst with the content produced by write.
//
// PARAMETERS:
//   - dst: The destination path. Its directory must already exist.
//   - write: Streams the file content. The writer is only valid during the call.
//
// RETURNS:
//   - An error if the temporary file cannot be created, written, synced or
//     renamed. On error dst is left as it was and the temporary file is removed.
func WriteFileAtomic(dst string, write func(w io.Writer) error) (err error) {
	tmpPath := tempPathFor(dst)

	tmp, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if err = write(tmp); err != nil {
		return err
	}

	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync temporary file: %w", err)
	}

	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err = os.Rename(tmpPath, dst); err != nil {
		return fmt.Errorf("failed to move file into place: %w", err)
	}

	return nil
}

// tempPathFor returns a hidden, unique sibling path for dst.
func tempPathFor(dst string) string {
	dir, base := filepath.Split(dst)
	return filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", base, uuid.New().String()))
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// GetFileSize returns the size of a file in bytes.
func GetFileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}
