package core

import (
	"encoding/json"
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/smarty/depcheck/contracts"
)

const latestVersion = "latest"

// TODO: widen components to \d+ once pipeline definitions relying on the
// single-digit pattern have been audited.
var versionPattern = regexp.MustCompile(`^\d\.\d\.\d$`)

func ValidVersion(version string) bool {
	return strings.EqualFold(version, latestVersion) || versionPattern.MatchString(version)
}

// ReleaseResolver turns a requested version into a concrete archive address by
// querying a release-metadata endpoint, unless the caller supplied a custom
// source address, which bypasses resolution entirely.
type ReleaseResolver struct {
	client   contracts.Downloader
	releases url.URL
}

func NewReleaseResolver(client contracts.Downloader, releases url.URL) *ReleaseResolver {
	return &ReleaseResolver{client: client, releases: releases}
}

func (this *ReleaseResolver) Resolve(request contracts.InstallRequest) (url.URL, error) {
	if request.CustomSourceURL != "" {
		address, err := url.Parse(request.CustomSourceURL)
		if err != nil {
			return url.URL{}, fmt.Errorf("malformed custom source url %q: %w", request.CustomSourceURL, err)
		}
		return *address, nil
	}

	address := this.releases
	if strings.EqualFold(request.RequestedVersion, latestVersion) {
		address.Path = path.Join(address.Path, "latest")
	} else {
		address.Path = path.Join(address.Path, "tags", "v"+request.RequestedVersion)
	}

	body, err := this.client.Download(address)
	if err != nil {
		return url.URL{}, err
	}
	defer func() { _ = body.Close() }()

	var release contracts.Release
	err = json.NewDecoder(body).Decode(&release)
	if err != nil {
		return url.URL{}, fmt.Errorf("malformed release metadata from %q: %w", address.String(), err)
	}

	for _, asset := range release.Assets {
		if asset.ContentType != contracts.ZipContentType {
			continue
		}
		download, err := url.Parse(asset.BrowserDownloadURL)
		if err != nil {
			return url.URL{}, fmt.Errorf("malformed asset url %q: %w", asset.BrowserDownloadURL, err)
		}
		return *download, nil
	}
	return url.URL{}, fmt.Errorf("%w (release %q)", contracts.ErrMissingReleaseAsset, release.TagName)
}
