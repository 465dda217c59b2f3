package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// rolling-update was removed from kubectl in v1.18, clients from that
// release on can't perform the updated state for replication controllers.
var rollingUpdateRemovedIn = semver.MustParse("1.18.0")

// ClientVersion queries the version of the kubectl client binary.
func ClientVersion(ctx context.Context, builder *Builder, runner Runner) (*semver.Version, error) {
	res, err := runner.Run(ctx, builder.Version()...)
	if err != nil {
		return nil, err
	}
	if res.Code != 0 {
		return nil, fmt.Errorf("kubectl version failed with exit code %d: %s", res.Code, strings.TrimSpace(res.Stderr))
	}

	var out struct {
		ClientVersion struct {
			GitVersion string `json:"gitVersion"`
		} `json:"clientVersion"`
	}
	if err := json.Unmarshal([]byte(res.Stdout), &out); err != nil {
		return nil, fmt.Errorf("decoding the kubectl version response failed, error: %w", err)
	}

	v, err := semver.NewVersion(strings.TrimPrefix(out.ClientVersion.GitVersion, "v"))
	if err != nil {
		return nil, fmt.Errorf("parsing the kubectl client version %q failed, error: %w", out.ClientVersion.GitVersion, err)
	}

	return v, nil
}

// SupportsRollingUpdate reports whether the given kubectl client still
// carries the rolling-update subcommand.
func SupportsRollingUpdate(v *semver.Version) bool {
	return v.LessThan(rollingUpdateRemovedIn)
}
