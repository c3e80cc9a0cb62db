package mesh

import "fmt"

// FixedNodeRule decides which grid nodes are supports. i runs over the
// x samples and j over the y samples of an hNodes × vNodes grid.
type FixedNodeRule interface {
	Name() string
	Fixed(i, j, hNodes, vNodes int) bool
}

// ThreeCornerRule fixes the plate corners (0,0), (0,H) and (W,H). The corner
// (W,0) stays free.
type ThreeCornerRule struct{}

func (ThreeCornerRule) Name() string { return "three-corners" }

func (ThreeCornerRule) Fixed(i, j, hNodes, vNodes int) bool {
	var (
		left   = i == 0
		right  = i == hNodes-1
		bottom = j == 0
		top    = j == vNodes-1
	)
	return (left && bottom) || (left && top) || (right && top)
}

// AllCornersRule fixes all four plate corners
type AllCornersRule struct{}

func (AllCornersRule) Name() string { return "all-corners" }

func (AllCornersRule) Fixed(i, j, hNodes, vNodes int) bool {
	return (i == 0 || i == hNodes-1) && (j == 0 || j == vNodes-1)
}

// FixedNodeRuleFunc adapts a plain function to FixedNodeRule
type FixedNodeRuleFunc func(i, j, hNodes, vNodes int) bool

func (f FixedNodeRuleFunc) Name() string { return "custom" }

func (f FixedNodeRuleFunc) Fixed(i, j, hNodes, vNodes int) bool {
	return f(i, j, hNodes, vNodes)
}

// DefaultFixedNodeRule is the support layout used when none is given
var DefaultFixedNodeRule FixedNodeRule = ThreeCornerRule{}

// RuleByName resolves a configured rule name. An empty name selects the default.
func RuleByName(name string) (FixedNodeRule, error) {
	switch name {
	case "":
		return DefaultFixedNodeRule, nil
	case ThreeCornerRule{}.Name():
		return ThreeCornerRule{}, nil
	case AllCornersRule{}.Name():
		return AllCornersRule{}, nil
	}
	return nil, fmt.Errorf("unknown fixed node rule %q", name)
}
