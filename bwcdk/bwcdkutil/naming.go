package bwcdkutil

import (
	"fmt"

	"github.com/aws/constructs-go/constructs/v10"
	"github.com/iancoleman/strcase"
)

// ResourceName returns a kebab-case physical name for label, prefixed with the
// qualifier and, inside a deployment stack, the deployment identifier:
// "Studio" in deployment "Prod" of qualifier "bwstudio" becomes "bwstudio-prod-studio".
//
// The hosting app name uses this form.
func ResourceName(scope constructs.Construct, label string) string {
	base := fmt.Sprintf("%s-%s", Qualifier(scope), label)
	if ident := DeploymentIdent(scope); ident != "" {
		base = fmt.Sprintf("%s-%s-%s", Qualifier(scope), ident, label)
	}
	return strcase.ToKebab(base)
}
