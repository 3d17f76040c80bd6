package bwcdkutil

import (
	"testing"
)

func TestRegionIdentFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		region    string
		wantIdent string
	}{
		{"us-east-1", "Use1"},
		{"us-west-2", "Usw2"},
		{"eu-west-1", "Euw1"},
		{"eu-central-1", "Euc1"},
		{"ap-northeast-1", "Apn1"},
		{"ap-southeast-2", "Ase2"},
		{"ap-south-1", "Aps1"},
		{"sa-east-1", "Sae1"},
		{"me-south-1", "Mes1"},
	}

	for _, tt := range tests {
		t.Run(tt.region, func(t *testing.T) {
			t.Parallel()

			if got := RegionIdentFor(tt.region); got != tt.wantIdent {
				t.Errorf("RegionIdentFor(%q) = %q, want %q", tt.region, got, tt.wantIdent)
			}
		})
	}
}

func TestRegionIdentFor_PanicsOutsideHosting(t *testing.T) {
	t.Parallel()

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic for a region without hosting")
		}
	}()

	RegionIdentFor("us-gov-west-1")
}

func TestIsKnownRegion(t *testing.T) {
	t.Parallel()

	if !IsKnownRegion("eu-central-1") {
		t.Error("eu-central-1 should be known")
	}
	for _, region := range []string{"unknown-region-1", "cn-north-1", "us-gov-east-1"} {
		if IsKnownRegion(region) {
			t.Errorf("%s should not be known", region)
		}
	}
}

func TestRegionIdents_Unique(t *testing.T) {
	t.Parallel()

	seen := map[string]string{}
	for _, region := range KnownRegions() {
		ident := regionIdents[region]
		if len(ident) != 4 {
			t.Errorf("identifier of %s = %q, want 4 characters", region, ident)
		}
		if other, ok := seen[ident]; ok {
			t.Errorf("%s and %s share identifier %s", region, other, ident)
		}
		seen[ident] = region
	}
	if len(seen) != 20 {
		t.Errorf("got %d hosting regions, want 20", len(seen))
	}
}
