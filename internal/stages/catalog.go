// Package stages holds the static stage catalog and builds playable stages
// from it.
package stages

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/mathquest/internal/problemgen"
)

// GameIntroCutscene is the cutscene played when a new game starts.
const GameIntroCutscene = "gameIntro"

// ErrUnknownCutscene is returned when a cutscene id is not in the catalog.
var ErrUnknownCutscene = errors.New("unknown cutscene")

//go:embed catalog.yaml
var embeddedCatalog []byte

// Data is the parsed catalog file.
type Data struct {
	Stages    []Template          `yaml:"stages"`
	Cutscenes map[string]Cutscene `yaml:"cutscenes"`
	Tutorial  []string            `yaml:"tutorial"`
}

var (
	defaultOnce sync.Once
	defaultData *Data
)

// Default returns the catalog compiled into the binary.
func Default() *Data {
	defaultOnce.Do(func() {
		d, err := Parse(embeddedCatalog)
		if err != nil {
			panic(fmt.Sprintf("stages: embedded catalog: %v", err))
		}
		defaultData = d
	})
	return defaultData
}

// LoadFile reads and validates a catalog from a YAML file.
func LoadFile(path string) (*Data, error) {
	b, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(b)
}

// Parse decodes and validates catalog YAML.
func Parse(b []byte) (*Data, error) {
	var d Data
	if err := yaml.Unmarshal(b, &d); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := d.validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

func (d *Data) validate() error {
	if len(d.Stages) == 0 {
		return errors.New("catalog has no stages")
	}
	ids := make(map[string]bool, len(d.Stages))
	for i, t := range d.Stages {
		switch {
		case t.ID == "":
			return fmt.Errorf("stage %d: missing id", i)
		case ids[t.ID]:
			return fmt.Errorf("stage %s: duplicate id", t.ID)
		case !t.Mode.Valid():
			return fmt.Errorf("stage %s: unknown operation %q", t.ID, t.Mode)
		case t.NumProblems < 0:
			return fmt.Errorf("stage %s: negative problem count", t.ID)
		case t.EnemyMaxHP <= 0:
			return fmt.Errorf("stage %s: enemy HP must be positive", t.ID)
		case !t.SpecialAbility.Valid():
			return fmt.Errorf("stage %s: unknown ability %q", t.ID, t.SpecialAbility)
		}
		ids[t.ID] = true
	}
	return nil
}

// Build generates problems for every template in order. A fresh global
// signature set is used per call so no problem repeats anywhere in the
// returned catalog.
func (d *Data) Build(gen *problemgen.Generator) []Stage {
	global := problemgen.NewSignatureSet()
	out := make([]Stage, 0, len(d.Stages))
	for _, t := range d.Stages {
		out = append(out, Stage{
			Template: t,
			Problems: gen.Generate(t.ID, t.Mode, t.NumProblems, global, t.Multiplier()),
		})
	}
	return out
}

// Cutscene returns the frames of cutscene id.
func (d *Data) Cutscene(id string) (Cutscene, error) {
	c, ok := d.Cutscenes[id]
	if !ok || len(c) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCutscene, id)
	}
	return c, nil
}

// TutorialVars are substituted into tutorial lines.
type TutorialVars struct {
	QuickSeconds int
	QuickBonus   int
}

// TutorialLines returns the tutorial text with {stageCount},
// {quickSeconds} and {quickBonus} filled in.
func (d *Data) TutorialLines(v TutorialVars) []string {
	r := strings.NewReplacer(
		"{stageCount}", strconv.Itoa(len(d.Stages)),
		"{quickSeconds}", strconv.Itoa(v.QuickSeconds),
		"{quickBonus}", strconv.Itoa(v.QuickBonus),
	)
	lines := make([]string, len(d.Tutorial))
	for i, l := range d.Tutorial {
		lines[i] = r.Replace(l)
	}
	return lines
}

// BuildCatalog builds the default catalog with gen.
func BuildCatalog(gen *problemgen.Generator) []Stage {
	return Default().Build(gen)
}

// Templates returns the default stage templates in play order.
func Templates() []Template {
	return Default().Stages
}

// Find returns the stage with id and its index, or -1.
func Find(stages []Stage, id string) (*Stage, int) {
	for i := range stages {
		if stages[i].ID == id {
			return &stages[i], i
		}
	}
	return nil, -1
}
