package shell

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httputil"
	"net/url"
	"time"

	"github.com/smarty/depcheck/contracts"
)

func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: time.Minute * 5}
}

// WebClient downloads over plain HTTP(S). Transport failures and transient
// status codes wrap contracts.RetryErr so the retry client tries again.
type WebClient struct {
	client *http.Client
}

func NewWebClient(client *http.Client) *WebClient {
	return &WebClient{client: client}
}

func (this *WebClient) Download(request url.URL) (io.ReadCloser, error) {
	response, err := this.client.Get(request.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %s", contracts.RetryErr, err)
	}
	if response.StatusCode == http.StatusOK {
		return response.Body, nil
	}
	this.dump(response)
	_ = response.Body.Close()
	if retryableStatus(response.StatusCode) {
		return nil, fmt.Errorf("%w: unexpected status code: %s", contracts.RetryErr, response.Status)
	}
	return nil, fmt.Errorf("unexpected status code: %s", response.Status)
}

func retryableStatus(statusCode int) bool {
	switch statusCode {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

func (this *WebClient) dump(response *http.Response) {
	responseDump, _ := httputil.DumpResponse(response, false)
	log.Printf("unexpected status code: \nresponse:\n%s", responseDump)
}
