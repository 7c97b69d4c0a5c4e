// Package summary implements the Summary Store (spec.md §4, component C1): one ambiguated
// side-effect summary per distinct short name, indexed by the function-literal nodes that
// contribute to it. Its design mirrors the annotation.Map / annotation.Key split in the teacher
// (uber-go-nilaway/annotation): a small immutable key type plus a mutable store keyed by it.
package summary

import (
	"fmt"
	"strings"

	"github.com/jmcabandara/purityflow/ast"
)

// propPrefix is the sentinel that disambiguates a property short name from a variable short name
// within the single key space spec.md §3 describes. "." can never appear in a bare identifier,
// so it is an unambiguous prefix.
const propPrefix = "."

// ShortName computes the short-name key for a variable reference (isProp=false) or a property
// reference (isProp=true). Only the last segment of a qualified property path is retained, per
// spec.md §3; callers are expected to have already stripped any qualification before calling
// this (package refmap does so while walking PropAccess chains).
func ShortName(name string, isProp bool) (string, error) {
	if name == "" {
		return "", fmt.Errorf("summary: empty short name is not permitted (spec.md §3)")
	}
	if isProp {
		return propPrefix + name, nil
	}
	return name, nil
}

// IsProperty reports whether a short name denotes a property (as opposed to a variable).
func IsProperty(shortName string) bool { return strings.HasPrefix(shortName, propPrefix) }

// DynamicNames are the highly-dynamic property names that must always carry every flag
// (spec.md §4.3 step 4, §8 "Dynamic-name blacklist" invariant).
var DynamicNames = []string{"call", "apply", "constructor"}

// IsDynamicName reports whether shortName is one of the always-impure dynamic property names.
func IsDynamicName(shortName string) bool {
	if !IsProperty(shortName) {
		return false
	}
	bare := strings.TrimPrefix(shortName, propPrefix)
	for _, d := range DynamicNames {
		if bare == d {
			return true
		}
	}
	return false
}

// FuncNode returns the underlying *ast.FuncLit/*ast.FuncDecl contributed by resolving a
// definition candidate, or false when the candidate is not itself a function node; seeding uses it
// to decide which candidates to associate with a name's summary.
func FuncNode(n ast.Node) (ast.Node, bool) {
	switch n.(type) {
	case *ast.FuncLit, *ast.FuncDecl:
		return n, true
	default:
		return nil, false
	}
}
