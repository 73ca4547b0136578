package cel

import (
	"net"
	"path/filepath"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	"github.com/google/cel-go/ext"
)

// celFunctions returns the custom CEL extension functions available to every
// check expression, alongside the standard string extensions. These mirror
// the teacher's universal policy environment's custom-function pattern,
// generalized for host/platform facts instead of MCP-proxy destinations:
// glob for shell-style pattern matching, ip_in_cidr for network-range checks
// (e.g. a platform's reported address against an expected subnet).
func celFunctions() []cel.EnvOption {
	return []cel.EnvOption{
		ext.Strings(),

		cel.Function("glob",
			cel.Overload("glob_string_string",
				[]*cel.Type{cel.StringType, cel.StringType},
				cel.BoolType,
				cel.BinaryBinding(func(pattern, name ref.Val) ref.Val {
					p, ok1 := pattern.Value().(string)
					n, ok2 := name.Value().(string)
					if !ok1 || !ok2 {
						return types.Bool(false)
					}
					matched, _ := filepath.Match(p, n)
					return types.Bool(matched)
				}),
			),
		),

		cel.Function("ip_in_cidr",
			cel.Overload("ip_in_cidr_string_string",
				[]*cel.Type{cel.StringType, cel.StringType},
				cel.BoolType,
				cel.BinaryBinding(func(ipVal, cidrVal ref.Val) ref.Val {
					ipStr, ok1 := ipVal.Value().(string)
					cidrStr, ok2 := cidrVal.Value().(string)
					if !ok1 || !ok2 {
						return types.Bool(false)
					}
					ip := net.ParseIP(ipStr)
					if ip == nil {
						return types.Bool(false)
					}
					_, network, err := net.ParseCIDR(cidrStr)
					if err != nil {
						return types.Bool(false)
					}
					return types.Bool(network.Contains(ip))
				}),
			),
		),
	}
}
