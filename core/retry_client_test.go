package core

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/smartystreets/assertions/should"
	"github.com/smartystreets/clock"
	"github.com/smartystreets/gunit"
	"github.com/smartystreets/logging"

	"github.com/smarty/depcheck/contracts"
)

func TestRetryClientFixture(t *testing.T) {
	gunit.Run(new(RetryClientFixture), t)
}

type RetryClientFixture struct {
	*gunit.Fixture
	client     *RetryClient
	fakeClient *FlakyDownloader
}

func (this *RetryClientFixture) Setup() {
	this.fakeClient = &FlakyDownloader{content: "content"}
	this.client = NewRetryClient(this.fakeClient, 5)
	this.client.sleeper = clock.StayAwake()
	this.client.logger = logging.Capture()
}

func (this *RetryClientFixture) TestDownloadCallsInner() {
	request := url.URL{Host: "host.com", Path: "/archive.zip"}

	reader, err := this.client.Download(request)

	all, _ := io.ReadAll(reader)
	this.So(string(all), should.Equal, "content")
	this.So(err, should.BeNil)
	this.So(this.fakeClient.request, should.Resemble, request)
}

func (this *RetryClientFixture) TestRetryableFailuresExhaustBudget() {
	this.fakeClient.failures = 6

	_, err := this.client.Download(url.URL{})

	this.So(err, should.Equal, retryableErr)
	this.So(this.fakeClient.attempts, should.Equal, 6)
	this.So(this.client.sleeper.Naps, should.Resemble, []time.Duration{
		time.Second * 3,
		time.Second * 3,
		time.Second * 3,
		time.Second * 3,
		time.Second * 3,
	})
}

func (this *RetryClientFixture) TestEventualSuccessWithinBudget() {
	this.fakeClient.failures = 3

	reader, err := this.client.Download(url.URL{})

	this.So(err, should.BeNil)
	this.So(reader, should.NotBeNil)
	this.So(this.fakeClient.attempts, should.Equal, 4)
}

func (this *RetryClientFixture) TestNonRetryableFailureReturnsImmediately() {
	this.fakeClient.failures = 1
	this.fakeClient.err = terminalErr

	_, err := this.client.Download(url.URL{})

	this.So(err, should.Equal, terminalErr)
	this.So(this.fakeClient.attempts, should.Equal, 1)
	this.So(this.client.sleeper.Naps, should.BeEmpty)
}

var (
	retryableErr = fmt.Errorf("%w: connection reset", contracts.RetryErr)
	terminalErr  = errors.New("unexpected status code: 404 Not Found")
)

///////////////////////////////////////////////////////////////////////////////////////////////

type FlakyDownloader struct {
	request  url.URL
	content  string
	failures int
	err      error
	attempts int
}

func (this *FlakyDownloader) Download(request url.URL) (io.ReadCloser, error) {
	this.request = request
	this.attempts++
	if this.attempts <= this.failures {
		if this.err != nil {
			return nil, this.err
		}
		return nil, retryableErr
	}
	return io.NopCloser(strings.NewReader(this.content)), nil
}
