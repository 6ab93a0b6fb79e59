package system

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// scriptBudget bounds one update call so a runaway loop cannot stall a frame.
const scriptBudget = 50 * time.Millisecond

const roundDispatchScript = `
if __phase == "update" {
	update(__engine, __state, __frame)
}
`

// ScriptSystem runs a tengo round script once per frame. The script must
// define update(engine, state, frame); state is a map that persists for the
// whole round. The first error disables the script until it is reloaded.
type ScriptSystem struct {
	Path string

	compiled *tengo.Compiled
	state    *tengo.Map
	disabled bool
	log      *slog.Logger
}

// NewScriptSystem compiles src. Compile errors are returned; runtime errors
// are logged by Update.
func NewScriptSystem(path string, src []byte, logger *slog.Logger) (*ScriptSystem, error) {
	if logger == nil {
		logger = slog.Default()
	}

	script := tengo.NewScript([]byte(string(src) + "\n" + roundDispatchScript))
	_ = script.Add("__phase", "")
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	_ = script.Add("__frame", 0)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("script %s: %w", path, err)
	}

	return &ScriptSystem{
		Path:     path,
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
		log:      logger.With("script", path),
	}, nil
}

// Disabled reports whether an earlier error switched the script off.
func (s *ScriptSystem) Disabled() bool {
	return s == nil || s.disabled
}

// State returns the script's persistent state map.
func (s *ScriptSystem) State() *tengo.Map {
	if s == nil {
		return nil
	}
	return s.state
}

// Update calls the script's update function for frame.
func (s *ScriptSystem) Update(engine *tengo.ImmutableMap, frame int) error {
	if s.Disabled() {
		return nil
	}
	if err := s.run("update", engine, frame); err != nil {
		s.disabled = true
		s.log.Error("round script failed, disabling", "frame", frame, "err", err)
		return err
	}
	return nil
}

func (s *ScriptSystem) run(phase string, engine *tengo.ImmutableMap, frame int) error {
	if engine == nil {
		engine = &tengo.ImmutableMap{Value: map[string]tengo.Object{}}
	}
	if err := s.compiled.Set("__phase", phase); err != nil {
		return err
	}
	if err := s.compiled.Set("__engine", engine); err != nil {
		return err
	}
	if err := s.compiled.Set("__state", s.state); err != nil {
		return err
	}
	if err := s.compiled.Set("__frame", frame); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), scriptBudget)
	defer cancel()
	err := s.compiled.RunContext(ctx)
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("update took longer than %s", scriptBudget)
	}
	return err
}

// ScriptHost is what the round script can reach through its engine map.
type ScriptHost interface {
	SpawnHazard(name string) (int, error)
	SpawnHazardAt(name string, x, y, vx, vy int) (int, error)
	ApplyPreset(name string, player int) error
	Push(player, strength, duration int) bool
	BoostDamage(player int, multiplier float64, duration int) bool
	ChangeGravity(player, multiplier, duration int) bool
	Restrain(player int, strength float64, anchorX, duration int) bool
	PlayerX(player int) int
	PlayerHP(player int) int
	HazardCount() int
}

// BuildScriptEngine exposes host to tengo. Bad arguments make a call return
// false rather than abort the script.
func BuildScriptEngine(host ScriptHost, logger *slog.Logger) *tengo.ImmutableMap {
	if logger == nil {
		logger = slog.Default()
	}
	values := map[string]tengo.Object{}

	values["spawn"] = &tengo.UserFunction{Name: "spawn", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		name := strings.TrimSpace(objectAsString(args[0]))
		id, err := host.SpawnHazard(name)
		if err != nil {
			logger.Warn("script spawn failed", "hazard", name, "err", err)
			return tengo.FalseValue, nil
		}
		return &tengo.Int{Value: int64(id)}, nil
	}}

	values["spawn_at"] = &tengo.UserFunction{Name: "spawn_at", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 5 {
			return tengo.FalseValue, nil
		}
		name := strings.TrimSpace(objectAsString(args[0]))
		nums, ok := intArgs(args[1:5])
		if !ok {
			return tengo.FalseValue, nil
		}
		id, err := host.SpawnHazardAt(name, nums[0], nums[1], nums[2], nums[3])
		if err != nil {
			logger.Warn("script spawn failed", "hazard", name, "err", err)
			return tengo.FalseValue, nil
		}
		return &tengo.Int{Value: int64(id)}, nil
	}}

	values["apply"] = &tengo.UserFunction{Name: "apply", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 {
			return tengo.FalseValue, nil
		}
		name := strings.TrimSpace(objectAsString(args[0]))
		player, ok := tengo.ToInt(args[1])
		if !ok {
			return tengo.FalseValue, nil
		}
		if err := host.ApplyPreset(name, player); err != nil {
			logger.Warn("script apply failed", "modifier", name, "player", player, "err", err)
			return tengo.FalseValue, nil
		}
		return tengo.TrueValue, nil
	}}

	values["push"] = &tengo.UserFunction{Name: "push", Value: func(args ...tengo.Object) (tengo.Object, error) {
		nums, ok := intArgs(args)
		if !ok || len(nums) < 3 {
			return tengo.FalseValue, nil
		}
		return boolObject(host.Push(nums[0], nums[1], nums[2])), nil
	}}

	values["boost_damage"] = &tengo.UserFunction{Name: "boost_damage", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 3 {
			return tengo.FalseValue, nil
		}
		player, ok1 := tengo.ToInt(args[0])
		mult, ok2 := tengo.ToFloat64(args[1])
		duration, ok3 := tengo.ToInt(args[2])
		if !ok1 || !ok2 || !ok3 {
			return tengo.FalseValue, nil
		}
		return boolObject(host.BoostDamage(player, mult, duration)), nil
	}}

	values["change_gravity"] = &tengo.UserFunction{Name: "change_gravity", Value: func(args ...tengo.Object) (tengo.Object, error) {
		nums, ok := intArgs(args)
		if !ok || len(nums) < 3 {
			return tengo.FalseValue, nil
		}
		return boolObject(host.ChangeGravity(nums[0], nums[1], nums[2])), nil
	}}

	values["restrain"] = &tengo.UserFunction{Name: "restrain", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 4 {
			return tengo.FalseValue, nil
		}
		player, ok1 := tengo.ToInt(args[0])
		strength, ok2 := tengo.ToFloat64(args[1])
		anchor, ok3 := tengo.ToInt(args[2])
		duration, ok4 := tengo.ToInt(args[3])
		if !ok1 || !ok2 || !ok3 || !ok4 {
			return tengo.FalseValue, nil
		}
		return boolObject(host.Restrain(player, strength, anchor, duration)), nil
	}}

	values["player_x"] = &tengo.UserFunction{Name: "player_x", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return &tengo.Int{}, nil
		}
		p, _ := tengo.ToInt(args[0])
		return &tengo.Int{Value: int64(host.PlayerX(p))}, nil
	}}

	values["player_hp"] = &tengo.UserFunction{Name: "player_hp", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return &tengo.Int{}, nil
		}
		p, _ := tengo.ToInt(args[0])
		return &tengo.Int{Value: int64(host.PlayerHP(p))}, nil
	}}

	values["hazards"] = &tengo.UserFunction{Name: "hazards", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(host.HazardCount())}, nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, objectAsString(a))
		}
		logger.Info("script", "msg", strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func intArgs(args []tengo.Object) ([]int, bool) {
	out := make([]int, 0, len(args))
	for _, a := range args {
		v, ok := tengo.ToInt(a)
		if !ok {
			return nil, false
		}
		out = append(out, v)
	}
	return out, true
}

func boolObject(v bool) tengo.Object {
	if v {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}
