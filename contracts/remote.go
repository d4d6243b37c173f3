package contracts

import (
	"io"
	"net/url"
)

type Downloader interface {
	Download(request url.URL) (io.ReadCloser, error)
}
