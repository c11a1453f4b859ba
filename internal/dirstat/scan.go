package dirstat

import (
	"bytes"
	"io"
	"os"
)

const scanBufferSize = 32 * 1024

// ScanFile counts bytes, lines and characters of the file at path.
// Counts gathered before a read error are returned along with the error.
func ScanFile(path string) (FileStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return FileStats{}, err
	}
	defer f.Close()

	return scan(f)
}

func scan(r io.Reader) (FileStats, error) {
	var stats FileStats

	buf := make([]byte, scanBufferSize)

	for {
		n, err := r.Read(buf)
		if n > 0 {
			stats.Bytes += int64(n)
			stats.Chars += int64(n)
			stats.Lines += int64(bytes.Count(buf[:n], []byte{'\n'}))
		}

		if err == io.EOF {
			return stats, nil
		}

		if err != nil {
			return stats, err
		}
	}
}
