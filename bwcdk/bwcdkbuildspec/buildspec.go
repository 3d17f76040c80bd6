// Package bwcdkbuildspec assembles the build specification the hosting platform
// executes for a Next.js standalone app inside a turborepo monorepo.
//
// Secrets and parameters never appear in the specification as values. The
// pre-build phase contains commands that look them up at build time, through the
// locator held in a build environment variable, and append them to a runtime env
// file that ships with the (ephemeral) build artifact.
package bwcdkbuildspec

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Phase names a build phase.
type Phase string

const (
	PhasePreBuild  Phase = "preBuild"
	PhaseBuild     Phase = "build"
	PhasePostBuild Phase = "postBuild"
)

// PhaseOrder is the fixed order in which the platform runs the phases.
var PhaseOrder = []Phase{PhasePreBuild, PhaseBuild, PhasePostBuild}

const (
	DefaultEnvFile      = ".env.production"
	DefaultScope        = "studio"
	DefaultTurboVersion = "1.10.3"
)

// DefaultPropagatePrefixes are the build environment variable prefixes copied
// into the runtime env file.
var DefaultPropagatePrefixes = []string{"STUDIO_PG_META_URL", "SUPABASE_", "NEXT_PUBLIC_"}

var (
	varNamePattern = regexp.MustCompile(`^[A-Z_][A-Z0-9_]*$`)
	fieldPattern   = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// Props configures the build specification.
type Props struct {
	// AppRoot is the monorepo-relative path of the application.
	// Required.
	AppRoot string
	// Scope is the turbo package scope of the application. Defaults to DefaultScope.
	Scope string
	// TurboVersion pins the turbo release used for pruning. Defaults to DefaultTurboVersion.
	TurboVersion string
	// EnvFile is the runtime env file. Defaults to DefaultEnvFile.
	EnvFile string
	// RuntimeValues are resolved at build time, in order.
	RuntimeValues []RuntimeValue
	// PropagatePrefixes are copied from the build environment. Defaults to
	// DefaultPropagatePrefixes.
	PropagatePrefixes []string
}

// Spec is a complete, immutable build specification.
type Spec struct {
	appRoot       string
	envFile       string
	runtimeValues []RuntimeValue
	phases        map[Phase][]string
}

// New validates the props and assembles the specification.
func New(props Props) (*Spec, error) {
	props = withDefaults(props)
	if err := validate(props); err != nil {
		return nil, err
	}

	s := &Spec{
		appRoot:       props.AppRoot,
		envFile:       props.EnvFile,
		runtimeValues: append([]RuntimeValue(nil), props.RuntimeValues...),
		phases:        make(map[Phase][]string, len(PhaseOrder)),
	}
	s.phases[PhasePreBuild] = preBuildCommands(props)
	s.phases[PhaseBuild] = buildCommands(props)
	s.phases[PhasePostBuild] = postBuildCommands(props)

	return s, nil
}

func withDefaults(props Props) Props {
	if props.Scope == "" {
		props.Scope = DefaultScope
	}
	if props.TurboVersion == "" {
		props.TurboVersion = DefaultTurboVersion
	}
	if props.EnvFile == "" {
		props.EnvFile = DefaultEnvFile
	}
	if props.PropagatePrefixes == nil {
		props.PropagatePrefixes = DefaultPropagatePrefixes
	}
	return props
}

func validate(props Props) error {
	root := strings.Trim(props.AppRoot, "/")
	if root == "" || root != props.AppRoot {
		return errors.Newf("app root must be a non-empty relative path without surrounding slashes, got %q",
			props.AppRoot)
	}
	if strings.ContainsAny(props.AppRoot, " $`'\"") {
		return errors.Newf("app root %q contains shell metacharacters", props.AppRoot)
	}

	seen := make(map[string]bool, len(props.RuntimeValues))
	for _, rv := range props.RuntimeValues {
		if err := rv.validate(); err != nil {
			return err
		}
		if seen[rv.Name] {
			return errors.Newf("runtime value %q is declared more than once", rv.Name)
		}
		seen[rv.Name] = true
	}

	for _, prefix := range props.PropagatePrefixes {
		if prefix == "" || !varNamePattern.MatchString(prefix) {
			return errors.Newf("invalid propagate prefix %q", prefix)
		}
	}
	return nil
}

func preBuildCommands(props Props) []string {
	cmds := make([]string, 0, len(props.RuntimeValues)+len(props.PropagatePrefixes)+3)
	for _, rv := range props.RuntimeValues {
		cmds = append(cmds, rv.Command(props.EnvFile))
	}
	for _, prefix := range props.PropagatePrefixes {
		cmds = append(cmds, fmt.Sprintf("env | grep -e %s >> %s", prefix, props.EnvFile))
	}
	return append(cmds,
		"cd ../",
		fmt.Sprintf("npx turbo@%s prune --scope=%s", props.TurboVersion, props.Scope),
		"npm clean-install",
	)
}

func buildCommands(props Props) []string {
	return []string{
		fmt.Sprintf("npx turbo run build --scope=%s --include-dependencies --no-deps", props.Scope),
		"npm prune --omit=dev",
	}
}

// postBuildCommands flattens the standalone output, which next nests under the
// monorepo directory name, into the artifact root. The env file is copied in
// before static assets so it is part of the artifact the platform reads.
func postBuildCommands(props Props) []string {
	return []string{
		"cd " + props.AppRoot,
		"REPO_DIR=$(ls -1 .next/standalone | head -n 1)",
		fmt.Sprintf("rsync -av --ignore-existing .next/standalone/$REPO_DIR/%s/ .next/standalone/", props.AppRoot),
		"rsync -av --ignore-existing .next/standalone/$REPO_DIR/node_modules/ .next/standalone/node_modules/",
		"rm -rf .next/standalone/$REPO_DIR",
		fmt.Sprintf("cp .env %s .next/standalone/", props.EnvFile),
		"rsync -av --ignore-existing public/ .next/standalone/public/",
		"rsync -av --ignore-existing .next/static/ .next/standalone/.next/static/",
	}
}

// AppRoot returns the monorepo-relative application root.
func (s *Spec) AppRoot() string {
	return s.appRoot
}

// EnvFile returns the runtime env file name.
func (s *Spec) EnvFile() string {
	return s.envFile
}

// Commands returns a copy of the commands of one phase.
func (s *Spec) Commands(p Phase) []string {
	return append([]string(nil), s.phases[p]...)
}

// RuntimeValues returns the values resolved during pre-build, in order.
func (s *Spec) RuntimeValues() []RuntimeValue {
	return append([]RuntimeValue(nil), s.runtimeValues...)
}

// LocatorVariables returns the build environment variables the pre-build phase
// reads, in first-use order. The hosting app must define each of them.
func (s *Spec) LocatorVariables() []string {
	var vars []string
	seen := map[string]bool{}
	add := func(v string) {
		if v != "" && !seen[v] {
			seen[v] = true
			vars = append(vars, v)
		}
	}
	for _, rv := range s.runtimeValues {
		add(rv.RegionVar)
		add(rv.LocatorVar)
	}
	return vars
}

// Document returns the serializable form of the specification.
func (s *Spec) Document() Document {
	return Document{
		Version: 1,
		Applications: []Application{{
			AppRoot: s.appRoot,
			Frontend: Frontend{
				Phases: Phases{
					PreBuild:  CommandList{Commands: s.Commands(PhasePreBuild)},
					Build:     CommandList{Commands: s.Commands(PhaseBuild)},
					PostBuild: CommandList{Commands: s.Commands(PhasePostBuild)},
				},
				Artifacts: Artifacts{
					BaseDirectory: ".next",
					Files:         []string{"**/*"},
				},
				Cache: Cache{
					Paths: []string{"node_modules/**/*"},
				},
			},
		}},
	}
}

// YAML renders the specification. Output is byte-identical for identical props.
func (s *Spec) YAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s.Document()); err != nil {
		return nil, errors.Wrap(err, "encoding build spec")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "closing build spec encoder")
	}
	return buf.Bytes(), nil
}
