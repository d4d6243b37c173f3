package core

import (
	"errors"
	"io"
	"net/url"
	"time"

	"github.com/smartystreets/clock"
	"github.com/smartystreets/logging"

	"github.com/smarty/depcheck/contracts"
)

type RetryClient struct {
	sleeper  *clock.Sleeper
	logger   *logging.Logger
	inner    contracts.Downloader
	maxRetry int
}

func NewRetryClient(inner contracts.Downloader, maxRetry int) *RetryClient {
	return &RetryClient{inner: inner, maxRetry: maxRetry}
}

func (this *RetryClient) Download(request url.URL) (body io.ReadCloser, err error) {
	for x := 0; x <= this.maxRetry; x++ {
		body, err = this.inner.Download(request)
		if err == nil {
			return body, nil
		}
		if !errors.Is(err, contracts.RetryErr) {
			return nil, err
		}
		if x < this.maxRetry {
			this.logger.Println("[WARN] download failed, retry imminent.")
			this.sleeper.Sleep(time.Second * 3)
		}
	}
	return nil, err
}
