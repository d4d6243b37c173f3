package core

import (
	"errors"
	"net/url"
	"testing"

	"github.com/smartystreets/assertions/should"
	"github.com/smartystreets/gunit"
	"github.com/smartystreets/logging"

	"github.com/smarty/depcheck/contracts"
	"github.com/smarty/depcheck/fs"
)

func TestInstallationFixture(t *testing.T) {
	gunit.Run(new(InstallationFixture), t)
}

type InstallationFixture struct {
	*gunit.Fixture
	filesystem *fs.InMemoryFileSystem
	resolver   *FakeResolver
	downloads  *FakeDownloads
	archives   *FakeArchives
	pruner     *FakePruner
	updater    *FakeUpdater
	events     []string
}

func (this *InstallationFixture) Setup() {
	this.filesystem = fs.NewInMemoryFileSystem()
	this.resolver = &FakeResolver{fixture: this, address: "https://example.com/dependency-check-9.0.4-release.zip"}
	this.downloads = &FakeDownloads{fixture: this, local: "staging/dependency-check-9.0.4-release.zip"}
	this.archives = &FakeArchives{fixture: this}
	this.pruner = &FakePruner{fixture: this}
	this.updater = &FakeUpdater{fixture: this, script: "staging/dependency-check/bin/dependency-check.sh"}
}

func (this *InstallationFixture) record(event string) {
	this.events = append(this.events, event)
}

func (this *InstallationFixture) install(request contracts.InstallRequest) error {
	installation := NewInstallation(
		this.resolver, this.downloads, this.archives, this.pruner, this.updater, this.filesystem, request)
	installation.logger = logging.Capture()
	return installation.Install()
}

func (this *InstallationFixture) freshRequest() contracts.InstallRequest {
	return contracts.InstallRequest{
		RequestedVersion:   "latest",
		InstallPath:        "staging/dependency-check",
		ExportDirectory:    "staging/reports",
		LogDirectory:       "staging/logs",
		WorkspaceDirectory: "staging",
		UpdateOnly:         true,
	}
}

func (this *InstallationFixture) TestFreshInstallationSequence() {
	err := this.install(this.freshRequest())

	this.So(err, should.BeNil)
	this.So(this.filesystem.DirectoryExists("staging/logs"), should.BeTrue)
	this.So(this.filesystem.DirectoryExists("staging/reports"), should.BeTrue)
	this.So(this.filesystem.DirectoryExists("staging/dependency-check"), should.BeTrue)
	this.So(this.events, should.Resemble, []string{"prune", "resolve", "download", "extract", "locate", "sweep", "update"})
	this.So(this.pruner.root, should.Equal, "staging/dependency-check")
	this.So(this.pruner.patterns, should.Resemble, KeepDataPatterns)
	this.So(this.downloads.address.String(), should.Equal, this.resolver.address)
	this.So(this.archives.archivePath, should.Equal, this.downloads.local)
	this.So(this.archives.targetDirectory, should.Equal, "staging")
	this.So(this.updater.options.LogFilePath, should.Equal, "staging/logs/dependency-check-log.txt")
}

func (this *InstallationFixture) TestInvalidVersionRejected() {
	request := this.freshRequest()
	request.RequestedVersion = "10.2.3"

	err := this.install(request)

	this.So(errors.Is(err, contracts.ErrInvalidVersion), should.BeTrue)
	this.So(this.events, should.BeEmpty)
}

func (this *InstallationFixture) TestPreexistingInstallationSkipsDownload() {
	_ = this.filesystem.EnsureDirectory("custom/dependency-check")
	request := this.freshRequest()
	request.InstallPath = "custom/dependency-check"
	request.Preexisting = true

	err := this.install(request)

	this.So(err, should.BeNil)
	this.So(this.events, should.Resemble, []string{"locate", "sweep", "update"})
	this.So(this.updater.installDirectory, should.Equal, "custom/dependency-check")
}

func (this *InstallationFixture) TestPreexistingInstallationMustExist() {
	request := this.freshRequest()
	request.InstallPath = "custom/missing"
	request.Preexisting = true

	err := this.install(request)

	this.So(err, should.NotBeNil)
	this.So(this.events, should.BeEmpty)
}

func (this *InstallationFixture) TestUpdateSkippedWhenNotRequested() {
	request := this.freshRequest()
	request.UpdateOnly = false

	err := this.install(request)

	this.So(err, should.BeNil)
	this.So(this.events, should.Resemble, []string{"prune", "resolve", "download", "extract"})
}

func (this *InstallationFixture) TestResolutionFailurePropagates() {
	this.resolver.err = errors.New("no such release")

	err := this.install(this.freshRequest())

	this.So(err, should.Equal, this.resolver.err)
	this.So(this.events, should.Resemble, []string{"prune", "resolve"})
}

func (this *InstallationFixture) TestDownloadFailurePropagates() {
	this.downloads.err = errors.New("connection reset")

	err := this.install(this.freshRequest())

	this.So(err, should.Equal, this.downloads.err)
	this.So(this.events, should.Resemble, []string{"prune", "resolve", "download"})
}

func (this *InstallationFixture) TestExtractionFailurePropagates() {
	this.archives.err = errors.New("corrupt archive")

	err := this.install(this.freshRequest())

	this.So(err, should.Equal, this.archives.err)
	this.So(this.events, should.Resemble, []string{"prune", "resolve", "download", "extract"})
}

func (this *InstallationFixture) TestMissingScriptFailsTheRun() {
	this.updater.locateErr = errors.New("dependency-check executable not found")

	err := this.install(this.freshRequest())

	this.So(err, should.Equal, this.updater.locateErr)
	this.So(this.events, should.Resemble, []string{"prune", "resolve", "download", "extract", "locate"})
}

///////////////////////////////////////////////////////////////////////////////////////////////

type FakeResolver struct {
	fixture *InstallationFixture
	request contracts.InstallRequest
	address string
	err     error
}

func (this *FakeResolver) Resolve(request contracts.InstallRequest) (url.URL, error) {
	this.fixture.record("resolve")
	this.request = request
	if this.err != nil {
		return url.URL{}, this.err
	}
	address, err := url.Parse(this.address)
	if err != nil {
		return url.URL{}, err
	}
	return *address, nil
}

type FakeDownloads struct {
	fixture *InstallationFixture
	address url.URL
	local   string
	err     error
}

func (this *FakeDownloads) Download(address url.URL) (string, error) {
	this.fixture.record("download")
	this.address = address
	if this.err != nil {
		return "", this.err
	}
	return this.local, nil
}

type FakeArchives struct {
	fixture         *InstallationFixture
	archivePath     string
	targetDirectory string
	err             error
}

func (this *FakeArchives) Install(archivePath, targetDirectory string) error {
	this.fixture.record("extract")
	this.archivePath = archivePath
	this.targetDirectory = targetDirectory
	return this.err
}

type FakePruner struct {
	fixture  *InstallationFixture
	root     string
	patterns []string
	err      error
}

func (this *FakePruner) Prune(root string, patterns []string) error {
	this.fixture.record("prune")
	this.root = root
	this.patterns = patterns
	return this.err
}

type FakeUpdater struct {
	fixture          *InstallationFixture
	installDirectory string
	script           string
	options          contracts.UpdateOptions
	locateErr        error
	updateErr        error
}

func (this *FakeUpdater) LocateScript(installDirectory string) (string, error) {
	this.fixture.record("locate")
	this.installDirectory = installDirectory
	if this.locateErr != nil {
		return "", this.locateErr
	}
	return this.script, nil
}

func (this *FakeUpdater) RemoveStaleLocks(installDirectory string) {
	this.fixture.record("sweep")
}

func (this *FakeUpdater) RunUpdate(script string, options contracts.UpdateOptions) (int, error) {
	this.fixture.record("update")
	this.options = options
	return 0, this.updateErr
}
