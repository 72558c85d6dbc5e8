// SPDX-License-Identifier: Apache-2.0

package dump

import (
	"compress/bzip2"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// Open opens a local dump file or an HTTP(S) URL as a byte stream,
// transparently decompressing bzip2 payloads. Wikimedia publishes dumps
// as .xml.bz2, so the common case never touches a temporary file: the
// caller reads straight from the (decompressed) stream. The returned
// ReadCloser must be closed by the caller.
func Open(pathOrURL string) (io.ReadCloser, error) {
	if strings.HasPrefix(pathOrURL, "http://") || strings.HasPrefix(pathOrURL, "https://") {
		return openHTTP(pathOrURL)
	}
	return openFile(pathOrURL)
}

func openFile(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(strings.ToLower(path), ".bz2") {
		// Keep the file's Close while reading through the decompressor.
		return struct {
			io.Reader
			io.Closer
		}{bzip2.NewReader(f), f}, nil
	}
	return f, nil
}

func openHTTP(url string) (io.ReadCloser, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("GET %s: unexpected status %s", url, resp.Status)
	}
	if hasBZ2Suffix(url) {
		return struct {
			io.Reader
			io.Closer
		}{bzip2.NewReader(resp.Body), resp.Body}, nil
	}
	return resp.Body, nil
}

// hasBZ2Suffix reports whether a URL path ends in .bz2, ignoring query
// and fragment parts.
func hasBZ2Suffix(raw string) bool {
	lower := strings.ToLower(raw)
	if i := strings.IndexAny(lower, "?#"); i >= 0 {
		lower = lower[:i]
	}
	return strings.HasSuffix(lower, ".bz2")
}
