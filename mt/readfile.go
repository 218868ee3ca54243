package mt

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

const readChunkSize = 64 * 1024

// ReadFile reads a whole file in chunks, reporting byte progress after
// each chunk. Meant to run inside a scheduled task.
func ReadFile(path string, report func(Progress)) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %q", path)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, errors.Wrapf(err, "stat %q", path)
	}
	size := st.Size()
	report(Progress{Kind: ProgressReading, NRead: 0, NSize: size})

	data := make([]byte, 0, size)
	buf := make([]byte, readChunkSize)
	for {
		n, err := f.Read(buf)
		data = append(data, buf[:n]...)
		report(Progress{Kind: ProgressReading, NRead: int64(len(data)), NSize: size})
		if err == io.EOF {
			return data, nil
		}
		if err != nil {
			return nil, errors.Wrapf(err, "read %q", path)
		}
	}
}
