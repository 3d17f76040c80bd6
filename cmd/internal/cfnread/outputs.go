// Package cfnread reads the outputs of deployed stacks through the AWS CLI.
package cfnread

import (
	"context"
	"encoding/json"

	"github.com/basewarphq/bwstudio/cmd/internal/cmdexec"
	"github.com/cockroachdb/errors"
)

// ErrNoOutput is returned when a stack lacks the requested output.
var ErrNoOutput = errors.New("stack output not found")

type describeStacksResponse struct {
	Stacks []struct {
		Outputs []struct {
			OutputKey   string `json:"OutputKey"`
			OutputValue string `json:"OutputValue"`
		} `json:"Outputs"`
	} `json:"Stacks"`
}

func StackOutputs(ctx context.Context, region, stackName string) (map[string]string, error) {
	out, err := cmdexec.Output(ctx, "/", "aws", "cloudformation", "describe-stacks",
		"--no-cli-pager",
		"--region", region,
		"--stack-name", stackName,
		"--output", "json",
	)
	if err != nil {
		return nil, errors.Wrapf(err, "describing stack %s in %s", stackName, region)
	}

	outputs, err := ParseOutputs([]byte(out))
	if err != nil {
		return nil, errors.Wrapf(err, "stack %s in %s", stackName, region)
	}
	return outputs, nil
}

// StackOutput returns a single output of a deployed stack.
func StackOutput(ctx context.Context, region, stackName, key string) (string, error) {
	outputs, err := StackOutputs(ctx, region, stackName)
	if err != nil {
		return "", err
	}
	value, ok := outputs[key]
	if !ok {
		return "", errors.Wrapf(ErrNoOutput, "%s has no output %q", stackName, key)
	}
	return value, nil
}

// ParseOutputs parses a describe-stacks response into output values by key.
func ParseOutputs(data []byte) (map[string]string, error) {
	var resp describeStacksResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, errors.Wrap(err, "parsing stack outputs")
	}

	if len(resp.Stacks) == 0 {
		return nil, errors.New("stack not found")
	}

	outputs := make(map[string]string, len(resp.Stacks[0].Outputs))
	for _, o := range resp.Stacks[0].Outputs {
		outputs[o.OutputKey] = o.OutputValue
	}
	return outputs, nil
}
