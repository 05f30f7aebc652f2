package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/newsdesk-lab/copydesk/pkg/domain/types"
	"github.com/newsdesk-lab/copydesk/pkg/service/policy"
	"github.com/newsdesk-lab/copydesk/pkg/utils/logging"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// Policy holds CLI flags for workflow policy configuration. The policy
// file can only widen the built-in capability table and tune validation
// thresholds; the transition matrix itself is not configurable.
type Policy struct {
	path string
}

// policyFile is the TOML layout of the policy file.
//
//	min_reason_length = 20
//
//	[[grant]]
//	role = "JOURNALIST"
//	resource = "tag"
//	actions = ["update"]
type policyFile struct {
	MinReasonLength int               `toml:"min_reason_length"`
	Grants          []policyFileGrant `toml:"grant"`
}

type policyFileGrant struct {
	Role     string   `toml:"role"`
	Resource string   `toml:"resource"`
	Actions  []string `toml:"actions"`
}

// Flags returns CLI flags for policy configuration
func (p *Policy) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "policy-file",
			Usage:       "Path to workflow policy file (TOML)",
			Sources:     cli.EnvVars("COPYDESK_POLICY_FILE"),
			Destination: &p.path,
		},
	}
}

// Configure builds the workflow engine. Without a policy file the
// built-in defaults apply.
func (p *Policy) Configure() (*policy.Engine, error) {
	if p.path == "" {
		return policy.New(), nil
	}

	data, err := os.ReadFile(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(ErrConfigNotFound, "policy file not found", goerr.V(ConfigPathKey, p.path))
		}
		return nil, goerr.Wrap(err, "failed to read policy file", goerr.V(ConfigPathKey, p.path))
	}

	var file policyFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, "failed to parse policy file",
			goerr.V(ConfigPathKey, p.path), goerr.V("error", err.Error()))
	}

	grants := make([]policy.Grant, 0, len(file.Grants))
	for i, g := range file.Grants {
		role, err := types.ParseRole(g.Role)
		if err != nil {
			return nil, goerr.Wrap(ErrInvalidGrant, err.Error(), goerr.V(GrantIndexKey, i))
		}
		kind, err := types.ParseResourceKind(g.Resource)
		if err != nil {
			return nil, goerr.Wrap(ErrInvalidGrant, err.Error(), goerr.V(GrantIndexKey, i))
		}
		actions := make([]types.Action, 0, len(g.Actions))
		for _, a := range g.Actions {
			action, err := types.ParseAction(a)
			if err != nil {
				return nil, goerr.Wrap(ErrInvalidGrant, err.Error(), goerr.V(GrantIndexKey, i))
			}
			actions = append(actions, action)
		}
		grants = append(grants, policy.Grant{Role: role, Kind: kind, Actions: actions})
	}

	opts := []policy.Option{}
	if len(grants) > 0 {
		opts = append(opts, policy.WithGrants(grants...))
	}
	if file.MinReasonLength > 0 {
		opts = append(opts, policy.WithMinReasonLength(file.MinReasonLength))
	}

	logging.Default().Info("Loaded workflow policy file",
		"path", p.path,
		"grants", len(grants),
		"min_reason_length", file.MinReasonLength,
	)
	return policy.New(opts...), nil
}
