// Package deployer finds out who is deploying, so the CDK app only synthesizes the
// deployments the caller is allowed to touch.
package deployer

import (
	"context"
	"strings"

	"github.com/basewarphq/bwstudio/cmd/internal/cmdexec"
	"github.com/cockroachdb/errors"
)

// Groups returns the IAM groups of the calling user. Callers that are not IAM
// users, such as assumed roles, belong to no group.
func Groups(ctx context.Context, profile string) ([]string, error) {
	out, err := cmdexec.Output(ctx, "/", "aws", withProfile(profile,
		"sts", "get-caller-identity",
		"--query", "Arn",
		"--output", "text",
	)...)
	if err != nil {
		return nil, errors.Wrap(err, "getting caller identity")
	}

	user, ok, err := UserName(strings.TrimSpace(out))
	if err != nil || !ok {
		return nil, err
	}

	out, err = cmdexec.Output(ctx, "/", "aws", withProfile(profile,
		"iam", "list-groups-for-user",
		"--user-name", user,
		"--query", "Groups[].GroupName",
		"--output", "text",
	)...)
	if err != nil {
		return nil, errors.Wrapf(err, "listing groups of %s", user)
	}
	return strings.Fields(out), nil
}

// UserName extracts the user name from a caller ARN. ok is false for callers that
// are not IAM users.
func UserName(arn string) (string, bool, error) {
	_, resource, found := strings.Cut(arn, ":user/")
	if !found {
		if strings.HasPrefix(arn, "arn:") {
			return "", false, nil
		}
		return "", false, errors.Newf("unexpected ARN format: %s", arn)
	}

	parts := strings.Split(resource, "/")
	username := parts[len(parts)-1]
	if username == "" {
		return "", false, errors.Newf("empty username in ARN: %s", arn)
	}
	return username, true, nil
}

// ContextArg returns the CDK context argument carrying groups.
func ContextArg(prefix string, groups []string) string {
	return prefix + "deployer-groups=" + strings.Join(groups, " ")
}

func withProfile(profile string, args ...string) []string {
	if profile != "" {
		args = append(args, "--profile", profile)
	}
	return args
}
