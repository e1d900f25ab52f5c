// Package scenario loads and replays YAML descriptions of an element tree
// plus scripted mutations, for driving the resize engine from the CLI.
package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/boxwatch/pkg/boxtest"
	"github.com/go-drift/boxwatch/pkg/geometry"
	"github.com/go-drift/boxwatch/pkg/host"
)

// Scenario describes a fake element tree, the targets to observe, and the
// mutation steps to replay.
type Scenario struct {
	Elements []ElementSpec `yaml:"elements"`
	Observe  []string      `yaml:"observe"`
	Steps    []Step        `yaml:"steps"`
}

// ElementSpec declares one element of the tree.
type ElementSpec struct {
	Name string `yaml:"name"`
	// Kind is "box" (default), "vector", or "text".
	Kind   string  `yaml:"kind,omitempty"`
	Width  float64 `yaml:"width,omitempty"`
	Height float64 `yaml:"height,omitempty"`
	// Sizing is "content-box" (default) or "border-box".
	Sizing  string  `yaml:"sizing,omitempty"`
	Padding float64 `yaml:"padding,omitempty"`
	Border  float64 `yaml:"border,omitempty"`
	Text    string  `yaml:"text,omitempty"`
}

// Step is one scripted mutation. Exactly one field is set per step.
type Step struct {
	Resize *ResizeStep `yaml:"resize,omitempty"`
	Text   *TextStep   `yaml:"text,omitempty"`
	Detach string      `yaml:"detach,omitempty"`
	Attach string      `yaml:"attach,omitempty"`
	// Tick fires the periodic fallback trigger instead of mutating.
	Tick bool `yaml:"tick,omitempty"`
}

// ResizeStep changes an element's declared size.
type ResizeStep struct {
	Target string  `yaml:"target"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// TextStep changes a text element's content. Text mutations are
// non-structural: they need a tick step to be noticed.
type TextStep struct {
	Target string `yaml:"target"`
	Value  string `yaml:"value"`
}

// Trigger tells the caller which host signal a step maps to.
type Trigger int

const (
	// TriggerNone means the step fired nothing; a later step delivers it.
	TriggerNone Trigger = iota
	// TriggerChange means the step is a structural mutation.
	TriggerChange
	// TriggerTick means the step is a periodic-tick request.
	TriggerTick
)

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	if err := sc.validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

func (s *Scenario) validate() error {
	if len(s.Elements) == 0 {
		return fmt.Errorf("scenario declares no elements")
	}
	names := make(map[string]bool, len(s.Elements))
	for _, spec := range s.Elements {
		if spec.Name == "" {
			return fmt.Errorf("element without a name")
		}
		if names[spec.Name] {
			return fmt.Errorf("duplicate element name %q", spec.Name)
		}
		names[spec.Name] = true
		switch spec.Kind {
		case "", "box", "vector", "text":
		default:
			return fmt.Errorf("element %q: unknown kind %q", spec.Name, spec.Kind)
		}
		switch spec.Sizing {
		case "", "content-box", "border-box":
		default:
			return fmt.Errorf("element %q: unknown sizing %q", spec.Name, spec.Sizing)
		}
	}
	for _, name := range s.Observe {
		if !names[name] {
			return fmt.Errorf("observe references unknown element %q", name)
		}
	}
	for i, step := range s.Steps {
		if err := step.validate(names); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return nil
}

func (s Step) validate(names map[string]bool) error {
	set := 0
	if s.Resize != nil {
		set++
		if !names[s.Resize.Target] {
			return fmt.Errorf("resize references unknown element %q", s.Resize.Target)
		}
	}
	if s.Text != nil {
		set++
		if !names[s.Text.Target] {
			return fmt.Errorf("text references unknown element %q", s.Text.Target)
		}
	}
	if s.Detach != "" {
		set++
		if !names[s.Detach] {
			return fmt.Errorf("detach references unknown element %q", s.Detach)
		}
	}
	if s.Attach != "" {
		set++
		if !names[s.Attach] {
			return fmt.Errorf("attach references unknown element %q", s.Attach)
		}
	}
	if s.Tick {
		set++
	}
	if set != 1 {
		return fmt.Errorf("exactly one action per step, got %d", set)
	}
	return nil
}

// Describe returns a one-line summary of the step for replay output.
func (s Step) Describe() string {
	switch {
	case s.Resize != nil:
		return fmt.Sprintf("resize %s to %gx%g", s.Resize.Target, s.Resize.Width, s.Resize.Height)
	case s.Text != nil:
		return fmt.Sprintf("set text of %s to %q", s.Text.Target, s.Text.Value)
	case s.Detach != "":
		return fmt.Sprintf("detach %s", s.Detach)
	case s.Attach != "":
		return fmt.Sprintf("attach %s", s.Attach)
	case s.Tick:
		return "tick"
	default:
		return "no-op"
	}
}

// Tree is a built scenario element tree.
type Tree struct {
	order  []host.Element
	byName map[string]host.Element
}

// Build constructs the boxtest elements the scenario declares.
func (s *Scenario) Build() (*Tree, error) {
	tree := &Tree{byName: make(map[string]host.Element, len(s.Elements))}
	for _, spec := range s.Elements {
		var element host.Element
		switch spec.Kind {
		case "", "box":
			e := boxtest.NewElement(spec.Name)
			sizing := host.ContentBox
			if spec.Sizing == "border-box" {
				sizing = host.BorderBox
			}
			e.SetMetrics(host.BoxMetrics{
				Size:    geometry.Size{Width: spec.Width, Height: spec.Height},
				Sizing:  sizing,
				Padding: geometry.UniformInsets(spec.Padding),
				Border:  geometry.UniformInsets(spec.Border),
			})
			element = e
		case "vector":
			element = boxtest.NewVectorElement(spec.Name, geometry.RectFromLTWH(0, 0, spec.Width, spec.Height))
		case "text":
			element = boxtest.NewTextElement(spec.Name, spec.Text)
		default:
			return nil, fmt.Errorf("element %q: unknown kind %q", spec.Name, spec.Kind)
		}
		tree.order = append(tree.order, element)
		tree.byName[spec.Name] = element
	}
	return tree, nil
}

// Lookup returns the element with the given scenario name.
func (t *Tree) Lookup(name string) (host.Element, bool) {
	e, ok := t.byName[name]
	return e, ok
}

// Apply performs one step's mutation and reports which trigger it maps to.
func (t *Tree) Apply(step Step) (Trigger, error) {
	switch {
	case step.Resize != nil:
		e, ok := t.byName[step.Resize.Target]
		if !ok {
			return TriggerNone, fmt.Errorf("unknown element %q", step.Resize.Target)
		}
		switch el := e.(type) {
		case *boxtest.Element:
			el.Resize(step.Resize.Width, step.Resize.Height)
		case *boxtest.VectorElement:
			el.SetBounds(geometry.RectFromLTWH(0, 0, step.Resize.Width, step.Resize.Height))
		default:
			return TriggerNone, fmt.Errorf("element %q does not support resize", step.Resize.Target)
		}
		return TriggerChange, nil
	case step.Text != nil:
		e, ok := t.byName[step.Text.Target]
		if !ok {
			return TriggerNone, fmt.Errorf("unknown element %q", step.Text.Target)
		}
		text, ok := e.(*boxtest.TextElement)
		if !ok {
			return TriggerNone, fmt.Errorf("element %q is not a text element", step.Text.Target)
		}
		text.SetText(step.Text.Value)
		return TriggerNone, nil
	case step.Detach != "":
		return t.setAttached(step.Detach, false)
	case step.Attach != "":
		return t.setAttached(step.Attach, true)
	case step.Tick:
		return TriggerTick, nil
	default:
		return TriggerNone, nil
	}
}

func (t *Tree) setAttached(name string, attached bool) (Trigger, error) {
	e, ok := t.byName[name]
	if !ok {
		return TriggerNone, fmt.Errorf("unknown element %q", name)
	}
	switch el := e.(type) {
	case *boxtest.Element:
		if attached {
			el.Attach()
		} else {
			el.Detach()
		}
	case *boxtest.VectorElement:
		if attached {
			el.Attach()
		} else {
			el.Detach()
		}
	case *boxtest.TextElement:
		if attached {
			el.Attach()
		} else {
			el.Detach()
		}
	default:
		return TriggerNone, fmt.Errorf("element %q does not support attach/detach", name)
	}
	return TriggerChange, nil
}

// Name returns the scenario name of a boxtest element.
func Name(e host.Element) string {
	switch el := e.(type) {
	case *boxtest.Element:
		return el.Name()
	case *boxtest.VectorElement:
		return el.Name()
	case *boxtest.TextElement:
		return el.Name()
	default:
		return fmt.Sprintf("%T", e)
	}
}
