package leftpeg

import (
	"fmt"
	"sort"
)

// EngineConfig is a typed key/value settings store governing the
// engine's own runtime behavior, grounded on the teacher's config.go
// (the same cfgVal tagged-union-by-hand representation, the same
// Set*/Get* naming, the same Debug() pretty-printer). Where the
// teacher's Config flags steer the grammar *compiler* (add_builtins,
// add_charsets, ...), EngineConfig's keys steer the parsing *engine*
// itself, since this module has no compiler.
type EngineConfig map[string]*cfgVal

// NewEngineConfig creates a configuration object primed with the
// engine's defaults.
func NewEngineConfig() *EngineConfig {
	c := make(EngineConfig)
	// 0 means unbounded, matching spec.md's literal grow-until-no-advance
	// semantics; hosts that want a hard cap on left-recursion growth can
	// raise this instead of rolling their own step counter.
	c.SetInt("rule.max_grow_iterations", 0)
	// rule entry/exit/left-recursion tracing is off by default, matching
	// the teacher's vm.show_fails default of being opt-in diagnostics.
	c.SetBool("trace.enabled", false)
	return &c
}

// Debug renders every setting, sorted by key, matching the teacher's
// Config.Debug layout.
func (c *EngineConfig) Debug() string {
	keys := make([]string, 0, len(*c))
	width := 0
	for k := range *c {
		keys = append(keys, k)
		if len(k) > width {
			width = len(k)
		}
	}
	sort.Strings(keys)

	out := ""
	for _, k := range keys {
		out += fmt.Sprintf("%-*s : %s\n", width, k, (*c)[k].String())
	}
	return out
}

type cfgValType int

const (
	cfgValType_Undefined cfgValType = iota
	cfgValType_Bool
	cfgValType_Int
)

func (vt cfgValType) String() string {
	switch vt {
	case cfgValType_Bool:
		return "bool"
	case cfgValType_Int:
		return "int"
	default:
		return "undefined"
	}
}

type cfgVal struct {
	typ    cfgValType
	asBool bool
	asInt  int
}

func (v *cfgVal) String() string {
	switch v.typ {
	case cfgValType_Bool:
		return fmt.Sprintf("%t (bool)", v.asBool)
	case cfgValType_Int:
		return fmt.Sprintf("%d (int)", v.asInt)
	default:
		return "(undefined)"
	}
}

func (c *EngineConfig) SetBool(path string, v bool) {
	(*c)[path] = &cfgVal{typ: cfgValType_Bool, asBool: v}
}

func (c *EngineConfig) SetInt(path string, v int) {
	(*c)[path] = &cfgVal{typ: cfgValType_Int, asInt: v}
}

// GetBool panics if path is unset or holds a different type, matching the
// teacher's GetBool/checkType convention of treating a misconfigured key
// as a programming error caught during development. TryGetBool is the
// non-panicking counterpart for hosts that read config built from
// untrusted input.
func (c *EngineConfig) GetBool(path string) bool {
	v, err := c.TryGetBool(path)
	if err != nil {
		panic(err)
	}
	return v
}

func (c *EngineConfig) TryGetBool(path string) (bool, error) {
	val, ok := (*c)[path]
	if !ok {
		return false, &ConfigError{Path: path, Reason: "not set"}
	}
	if val.typ != cfgValType_Bool {
		return false, &ConfigError{Path: path, Reason: fmt.Sprintf("is %s, not bool", val.typ)}
	}
	return val.asBool, nil
}

func (c *EngineConfig) GetInt(path string) int {
	v, err := c.TryGetInt(path)
	if err != nil {
		panic(err)
	}
	return v
}

func (c *EngineConfig) TryGetInt(path string) (int, error) {
	val, ok := (*c)[path]
	if !ok {
		return 0, &ConfigError{Path: path, Reason: "not set"}
	}
	if val.typ != cfgValType_Int {
		return 0, &ConfigError{Path: path, Reason: fmt.Sprintf("is %s, not int", val.typ)}
	}
	return val.asInt, nil
}
