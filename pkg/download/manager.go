package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mholt/archives"

	pkgerrors "github.com/cperrin88/extasset/pkg/errors"
	"github.com/cperrin88/extasset/pkg/fsutil"
)

// DefaultUserAgent is sent when no user agent is configured.
const DefaultUserAgent = "extasset/1.0"

// acceptEncoding lists the content codings the fetcher can undo.
const acceptEncoding = "gzip, br, zstd, deflate"

// HTTPFetcher is a single-attempt HTTP fetcher: no retries, no resume, and
// no timeout unless one is configured.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
}

// NewFetcher creates a fetcher. A zero timeout means requests never time out.
func NewFetcher(timeout time.Duration, userAgent string) *HTTPFetcher {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &HTTPFetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// Fetch downloads url into dest. See Fetcher.
func (f *HTTPFetcher) Fetch(ctx context.Context, url, dest string) (string, error) {
	resp, err := f.doRequest(ctx, url)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := decodeBody(resp)
	if err != nil {
		return "", pkgerrors.NewTransportError(url, pkgerrors.Wrap(err, "decode response body"))
	}
	defer func() { _ = body.Close() }()

	if err := writeBody(body, dest); err != nil {
		return "", pkgerrors.NewTransportError(url, err)
	}
	return resp.Header.Get("Content-Type"), nil
}

func (f *HTTPFetcher) doRequest(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, pkgerrors.NewTransportError(url, pkgerrors.Wrap(err, "failed to create request"))
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept-Encoding", acceptEncoding)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, pkgerrors.NewTransportError(url, err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, pkgerrors.NewStatusError(url, resp.StatusCode)
	}
	return resp, nil
}

// decodeBody undoes the response's Content-Encoding so the stored file holds
// the identity representation. Stacked codings are undone last-applied first.
// A coding the fetcher cannot undo is an error.
func decodeBody(resp *http.Response) (io.ReadCloser, error) {
	codings := strings.Split(resp.Header.Get("Content-Encoding"), ",")
	chain := decodeChain{r: resp.Body}
	for i := len(codings) - 1; i >= 0; i-- {
		dec, err := decompressorFor(codings[i])
		if err != nil {
			_ = chain.Close()
			return nil, err
		}
		if dec == nil {
			continue
		}
		rc, err := dec.OpenReader(chain.r)
		if err != nil {
			_ = chain.Close()
			return nil, pkgerrors.Wrapf(err, "open %s reader", strings.TrimSpace(codings[i]))
		}
		chain.r = rc
		chain.closers = append(chain.closers, rc)
	}
	return &chain, nil
}

// decompressorFor maps one content coding to its decompressor. Identity and
// empty codings return nil.
func decompressorFor(coding string) (archives.Decompressor, error) {
	switch strings.ToLower(strings.TrimSpace(coding)) {
	case "", "identity":
		return nil, nil
	case "gzip", "x-gzip":
		return archives.Gz{}, nil
	case "br":
		return archives.Brotli{}, nil
	case "zstd":
		return archives.Zstd{}, nil
	case "deflate":
		return archives.Zlib{}, nil
	default:
		return nil, fmt.Errorf("unsupported content encoding %q", strings.TrimSpace(coding))
	}
}

// decodeChain reads through stacked decoders and closes them innermost last.
// The response body itself is closed by Fetch.
type decodeChain struct {
	r       io.Reader
	closers []io.Closer
}

func (c *decodeChain) Read(p []byte) (int, error) { return c.r.Read(p) }

func (c *decodeChain) Close() error {
	var first error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	c.closers = nil
	return first
}

// writeBody streams r into dest. A partially written dest is removed on failure.
func writeBody(r io.Reader, dest string) error {
	if err := fsutil.EnsureFileDir(dest); err != nil {
		return pkgerrors.Wrap(err, "could not create download dir")
	}
	out, err := fsutil.CreateFilePerm(dest, fsutil.FileModeSecure)
	if err != nil {
		return pkgerrors.Wrap(err, "could not create file")
	}

	if _, err := io.Copy(out, r); err != nil {
		_ = out.Close()
		_ = os.Remove(dest)
		return pkgerrors.Wrap(err, "could not write file")
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(dest)
		return pkgerrors.Wrap(err, "could not close file")
	}
	return nil
}
