// Package cdkctx reads the deployment context the CDK app is synthesized with from
// cdk.json, so the CLI addresses the same stacks and references without synthesizing.
package cdkctx

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"

	"github.com/basewarphq/bwstudio/bwcdk/bwcdkutil"
	"github.com/cockroachdb/errors"
)

type CDKContext struct {
	Qualifier       string
	Prefix          string
	Region          string
	Deployments     []string
	DBSecretArn     string
	DBSecretName    string
	AnonKeyParam    string
	ServiceKeyParam string
	ParamsRegion    string
	AppRoot         string
}

type field struct {
	key string
	dst *string
}

// Load reads the context block of cdkDir/cdk.json. Keys are looked up with prefix,
// e.g. "bwstudio-".
func Load(cdkDir, prefix string) (*CDKContext, error) {
	cdkJSON := filepath.Join(cdkDir, "cdk.json")
	data, err := os.ReadFile(cdkJSON)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", cdkJSON)
	}

	var file struct {
		Context map[string]json.RawMessage `json:"context"`
	}
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", cdkJSON)
	}
	m := file.Context

	cctx := &CDKContext{Prefix: prefix}
	for _, f := range []field{
		{"qualifier", &cctx.Qualifier},
		{"region", &cctx.Region},
		{"anon-key-param", &cctx.AnonKeyParam},
		{"service-key-param", &cctx.ServiceKeyParam},
	} {
		if *f.dst, err = getString(m, prefix+f.key); err != nil {
			return nil, errors.Wrapf(err, "in %s", cdkJSON)
		}
	}
	for _, f := range []field{
		{"db-secret-arn", &cctx.DBSecretArn},
		{"db-secret-name", &cctx.DBSecretName},
		{"params-region", &cctx.ParamsRegion},
		{"app-root", &cctx.AppRoot},
	} {
		if *f.dst, err = getOptionalString(m, prefix+f.key); err != nil {
			return nil, errors.Wrapf(err, "in %s", cdkJSON)
		}
	}
	if cctx.Deployments, err = getStringSlice(m, prefix+"deployments"); err != nil {
		return nil, errors.Wrapf(err, "in %s", cdkJSON)
	}

	if cctx.ParamsRegion == "" {
		cctx.ParamsRegion = cctx.Region
	}
	if cctx.DBSecretArn == "" && cctx.DBSecretName == "" {
		return nil, errors.Newf("in %s: one of %q or %q must be set",
			cdkJSON, prefix+"db-secret-arn", prefix+"db-secret-name")
	}
	if !bwcdkutil.IsKnownRegion(cctx.Region) {
		return nil, errors.Newf("in %s: unknown region %q", cdkJSON, cctx.Region)
	}

	return cctx, nil
}

func (c *CDKContext) IsValidDeployment(name string) bool {
	return slices.Contains(c.Deployments, name)
}

// StackName returns the name of the stack of a deployment.
func (c *CDKContext) StackName(deployment string) string {
	return bwcdkutil.DeploymentStackName(c.Qualifier, bwcdkutil.RegionIdentFor(c.Region), deployment)
}

// DBSecretID returns the complete ARN of the database secret if configured, its
// name otherwise.
func (c *CDKContext) DBSecretID() string {
	if c.DBSecretArn != "" {
		return c.DBSecretArn
	}
	return c.DBSecretName
}

func getString(m map[string]json.RawMessage, key string) (string, error) {
	if _, ok := m[key]; !ok {
		return "", errors.Newf("context key %q is not set", key)
	}
	return getOptionalString(m, key)
}

func getOptionalString(m map[string]json.RawMessage, key string) (string, error) {
	raw, ok := m[key]
	if !ok {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", errors.Newf("context key %q must be a string", key)
	}
	return s, nil
}

func getStringSlice(m map[string]json.RawMessage, key string) ([]string, error) {
	raw, ok := m[key]
	if !ok {
		return nil, errors.Newf("context key %q is not set", key)
	}
	var ss []string
	if err := json.Unmarshal(raw, &ss); err != nil {
		return nil, errors.Newf("context key %q must be an array of strings", key)
	}
	return ss, nil
}
