package bwcdkref_test

import (
	"testing"

	"github.com/basewarphq/bwstudio/bwcdk/bwcdkref"
	"github.com/cockroachdb/errors"
)

func TestNewSecret(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		id      string
		locator string
		wantErr bool
	}{
		{
			name:    "complete arn",
			id:      "supabase/db",
			locator: "arn:aws:secretsmanager:us-east-1:123456789012:secret:supabase/db-AbCdEf",
		},
		{
			name:    "unresolved token",
			id:      "supabase/db",
			locator: "arn:${Token[AWS.Partition.8]}:secretsmanager:us-east-1:${Token[AWS.AccountId.2]}:secret:supabase/db",
		},
		{
			name:    "empty locator",
			id:      "supabase/db",
			locator: "",
			wantErr: true,
		},
		{
			name:    "wildcard locator",
			id:      "supabase/db",
			locator: "arn:aws:secretsmanager:us-east-1:123456789012:secret:*",
			wantErr: true,
		},
		{
			name:    "not an arn",
			id:      "supabase/db",
			locator: "supabase/db",
			wantErr: true,
		},
		{
			name:    "arn of another service",
			id:      "supabase/db",
			locator: "arn:aws:ssm:us-east-1:123456789012:parameter/db",
			wantErr: true,
		},
		{
			name:    "missing identifier",
			id:      " ",
			locator: "arn:aws:secretsmanager:us-east-1:123456789012:secret:supabase/db-AbCdEf",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ref, err := bwcdkref.NewSecret(tt.id, tt.locator)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error but got nil")
				}
				if !errors.Is(err, bwcdkref.ErrUnresolved) {
					t.Errorf("error %v should wrap ErrUnresolved", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ref.Locator != tt.locator {
				t.Errorf("Locator = %q, want %q", ref.Locator, tt.locator)
			}
		})
	}
}

func TestNewParameter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		param   bwcdkref.Parameter
		wantErr bool
	}{
		{
			name: "valid",
			param: bwcdkref.Parameter{
				Name: "/anon", Region: "us-east-1",
				Locator: "arn:aws:ssm:us-east-1:123456789012:parameter/anon",
			},
		},
		{
			name: "missing region",
			param: bwcdkref.Parameter{
				Name: "/anon", Locator: "arn:aws:ssm:us-east-1:123456789012:parameter/anon",
			},
			wantErr: true,
		},
		{
			name:    "missing name",
			param:   bwcdkref.Parameter{Region: "us-east-1", Locator: "arn:aws:ssm:us-east-1:123456789012:parameter/anon"},
			wantErr: true,
		},
		{
			name:    "secret arn",
			param:   bwcdkref.Parameter{Name: "/anon", Region: "us-east-1", Locator: "arn:aws:secretsmanager:us-east-1:1:secret:x"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := bwcdkref.NewParameter(tt.param.Name, tt.param.Region, tt.param.Locator)
			if tt.wantErr && err == nil {
				t.Fatal("expected error but got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestIsToken(t *testing.T) {
	t.Parallel()

	if !bwcdkref.IsToken("${Token[TOKEN.123]}") {
		t.Error("encoded token should be detected")
	}
	if bwcdkref.IsToken("arn:aws:ssm:us-east-1:123456789012:parameter/anon") {
		t.Error("literal arn should not be a token")
	}
}
