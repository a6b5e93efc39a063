// Package archive fetches and unpacks emulator release archives.
package archive

import (
	"archive/tar"
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/klauspost/compress/gzip"
	"github.com/nwaples/rardecode/v2"
	"github.com/ulikunitz/xz"
)

// ErrUnsupportedFormat is returned for archives whose format is
// known neither from the extension nor from the leading bytes.
var ErrUnsupportedFormat = errors.New("archive: unsupported format")

var magics = []struct {
	prefix string
	format string
}{
	{"PK\x03\x04", ".zip"},
	{"7z\xbc\xaf\x27\x1c", ".7z"},
	{"\x1f\x8b", ".tar.gz"},
	{"\xfd7zXZ\x00", ".tar.xz"},
	{"Rar!\x1a\x07", ".rar"},
}

// Extract unpacks src into destFolder, choosing the format from
// the file extension, or from the leading bytes when the
// extension is unknown. Entries escaping destFolder are rejected.
func Extract(src, destFolder string) error {
	format := formatOf(src)
	if format == "" {
		var err error
		if format, err = sniff(src); err != nil {
			return err
		}
	}
	if format == "" {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(src))
	}

	if err := os.MkdirAll(destFolder, os.ModePerm); err != nil {
		return err
	}
	switch format {
	case ".zip":
		return Unzip(src, destFolder)
	case ".7z":
		return un7z(src, destFolder)
	case ".tar.gz":
		return untar(src, destFolder, func(r io.Reader) (io.Reader, error) { return gzip.NewReader(r) })
	case ".tar.xz":
		return untar(src, destFolder, func(r io.Reader) (io.Reader, error) { return xz.NewReader(r) })
	default:
		return unrar(src, destFolder)
	}
}

func formatOf(src string) string {
	name := strings.ToLower(src)
	switch {
	case strings.HasSuffix(name, ".zip"):
		return ".zip"
	case strings.HasSuffix(name, ".7z"):
		return ".7z"
	case strings.HasSuffix(name, ".tar.gz"), strings.HasSuffix(name, ".tgz"):
		return ".tar.gz"
	case strings.HasSuffix(name, ".tar.xz"):
		return ".tar.xz"
	case strings.HasSuffix(name, ".rar"):
		return ".rar"
	}
	return ""
}

// sniff guesses the format of src from its first bytes.
func sniff(src string) (string, error) {
	f, err := os.Open(src)
	if err != nil {
		return "", err
	}
	defer f.Close()

	head := make([]byte, 8)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", err
	}
	for _, m := range magics {
		if strings.HasPrefix(string(head[:n]), m.prefix) {
			return m.format, nil
		}
	}
	return "", nil
}

// Unzip extracts every file of zipFile into destFolder.
func Unzip(zipFile, destFolder string) error {
	r, err := zip.OpenReader(zipFile)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, file := range r.File {
		if err := writeEntry(destFolder, file.Name, file.FileInfo().IsDir(), file.Open); err != nil {
			return err
		}
	}
	return nil
}

func un7z(src, destFolder string) error {
	r, err := sevenzip.OpenReader(src)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, file := range r.File {
		if err := writeEntry(destFolder, file.Name, file.FileInfo().IsDir(), file.Open); err != nil {
			return err
		}
	}
	return nil
}

func untar(src, destFolder string, decompress func(io.Reader) (io.Reader, error)) error {
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()

	dr, err := decompress(f)
	if err != nil {
		return err
	}

	tr := tar.NewReader(dr)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		switch hdr.Typeflag {
		case tar.TypeDir, tar.TypeReg:
		default:
			continue // links and devices are never needed to run an emulator
		}
		open := func() (io.ReadCloser, error) { return io.NopCloser(tr), nil }
		if err := writeEntry(destFolder, hdr.Name, hdr.Typeflag == tar.TypeDir, open); err != nil {
			return err
		}
		if hdr.Typeflag == tar.TypeReg && hdr.FileInfo().Mode()&0111 != 0 {
			_ = os.Chmod(filepath.Join(destFolder, filepath.FromSlash(hdr.Name)), 0755)
		}
	}
}

func unrar(src, destFolder string) error {
	r, err := rardecode.OpenReader(src)
	if err != nil {
		return err
	}
	defer r.Close()

	for {
		hdr, err := r.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		open := func() (io.ReadCloser, error) { return io.NopCloser(r), nil }
		if err := writeEntry(destFolder, hdr.Name, hdr.IsDir, open); err != nil {
			return err
		}
	}
}

// writeEntry creates a single archive entry below destFolder.
func writeEntry(destFolder, name string, isDir bool, open func() (io.ReadCloser, error)) error {
	destPath, err := safeJoin(destFolder, name)
	if err != nil {
		return err
	}

	if isDir {
		return os.MkdirAll(destPath, os.ModePerm)
	}
	if err := os.MkdirAll(filepath.Dir(destPath), os.ModePerm); err != nil {
		return err
	}

	rc, err := open()
	if err != nil {
		return err
	}
	defer rc.Close()

	destFile, err := os.Create(destPath)
	if err != nil {
		return err
	}
	if _, err := io.Copy(destFile, rc); err != nil {
		destFile.Close()
		return err
	}
	return destFile.Close()
}

// safeJoin joins name onto dir, refusing names that would land
// outside of it.
func safeJoin(dir, name string) (string, error) {
	p := filepath.Join(dir, filepath.FromSlash(name))
	rel, err := filepath.Rel(dir, p)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("archive: entry %q escapes destination", name)
	}
	return p, nil
}
