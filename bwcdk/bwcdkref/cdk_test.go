//nolint:paralleltest // jsii runtime doesn't support parallel tests
package bwcdkref_test

import (
	"testing"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awssecretsmanager"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsssm"
	"github.com/aws/jsii-runtime-go"
	"github.com/basewarphq/bwstudio/bwcdk/bwcdkref"
)

func newStack() awscdk.Stack {
	app := awscdk.NewApp(nil)
	return awscdk.NewStack(app, jsii.String("TestStack"), &awscdk.StackProps{
		Env: &awscdk.Environment{
			Account: jsii.String("123456789012"),
			Region:  jsii.String("us-east-1"),
		},
	})
}

func TestFromSecret_CompleteArn(t *testing.T) {
	defer jsii.Close()

	const arn = "arn:aws:secretsmanager:us-east-1:123456789012:secret:supabase/db-AbCdEf"
	stack := newStack()
	secret := awssecretsmanager.Secret_FromSecretCompleteArn(stack, jsii.String("Db"), jsii.String(arn))

	ref, err := bwcdkref.FromSecret(secret)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.Locator != arn {
		t.Errorf("Locator = %q, want %q", ref.Locator, arn)
	}
	if ref.Partial {
		t.Error("secret imported by complete ARN should not be partial")
	}
}

func TestFromSecret_ByName(t *testing.T) {
	defer jsii.Close()

	stack := newStack()
	secret := awssecretsmanager.Secret_FromSecretNameV2(stack, jsii.String("Db"), jsii.String("supabase/db"))

	ref, err := bwcdkref.FromSecret(secret)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ref.Partial {
		t.Error("secret imported by name should be partial")
	}
	if ref.ID != "supabase/db" {
		t.Errorf("ID = %q, want %q", ref.ID, "supabase/db")
	}
}

func TestFromStringParameter(t *testing.T) {
	defer jsii.Close()

	stack := newStack()
	param := awsssm.StringParameter_FromStringParameterName(stack, jsii.String("Anon"), jsii.String("/anon"))

	ref, err := bwcdkref.FromStringParameter(param)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.Name != "/anon" {
		t.Errorf("Name = %q, want %q", ref.Name, "/anon")
	}
	if ref.Region != "us-east-1" {
		t.Errorf("Region = %q, want %q", ref.Region, "us-east-1")
	}
	if ref.Locator == "" {
		t.Error("Locator should not be empty")
	}
}

func TestParameterInRegion(t *testing.T) {
	defer jsii.Close()

	stack := newStack()
	ref, err := bwcdkref.ParameterInRegion(stack, "/supabase/anon", "eu-west-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.Region != "eu-west-1" {
		t.Errorf("Region = %q, want eu-west-1", ref.Region)
	}
	if !bwcdkref.IsToken(ref.Locator) {
		t.Errorf("Locator = %q, want a token resolving to the parameter ARN", ref.Locator)
	}

	if _, err := bwcdkref.ParameterInRegion(stack, "supabase/anon", "eu-west-1"); err == nil {
		t.Error("expected error for relative name")
	}
}
