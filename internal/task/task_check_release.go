package task

import (
	"context"
	"net/http"
	"time"

	"github.com/ankibridge/ankibridge-service/pkg/app"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/mod/semver"
)

// CheckReleaseTask polls the GitHub releases feed and reports whether a
// newer version exists through the OnResult callback.
type CheckReleaseTask struct {
	// ReleaseURL the GitHub "latest release" API endpoint
	ReleaseURL string
	// CurrentVersion the running build's version tag
	CurrentVersion string
	Interval       time.Duration
	OnResult       func(app.CheckVersionInfo)
	Logger         *zap.Logger

	client *http.Client
}

type githubRelease struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

func (t *CheckReleaseTask) Name() string { return "check_release" }

func (t *CheckReleaseTask) LoopInterval() time.Duration {
	if t.Interval <= 0 {
		return 24 * time.Hour
	}
	return t.Interval
}

func (t *CheckReleaseTask) IsStartupRun() bool { return true }

func (t *CheckReleaseTask) Run(ctx context.Context) error {
	if t.ReleaseURL == "" || t.OnResult == nil {
		return nil
	}
	if t.client == nil {
		t.client = &http.Client{Timeout: 15 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.ReleaseURL, nil)
	if err != nil {
		return errors.Wrap(err, "build release request")
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := t.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "fetch latest release")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("release check returned %d", resp.StatusCode)
	}

	var release githubRelease
	if err := sonic.ConfigDefault.NewDecoder(resp.Body).Decode(&release); err != nil {
		return errors.Wrap(err, "decode release")
	}

	current := canonicalVersion(t.CurrentVersion)
	latest := canonicalVersion(release.TagName)
	isNew := semver.IsValid(current) && semver.IsValid(latest) && semver.Compare(latest, current) > 0

	t.OnResult(app.CheckVersionInfo{
		VersionIsNew:   isNew,
		VersionNewName: release.TagName,
		VersionNewLink: release.HTMLURL,
	})
	if t.Logger != nil && isNew {
		t.Logger.Info("new release available",
			zap.String("current", t.CurrentVersion),
			zap.String("latest", release.TagName),
		)
	}
	return nil
}

func canonicalVersion(v string) string {
	if v == "" {
		return v
	}
	if v[0] != 'v' {
		v = "v" + v
	}
	return v
}
