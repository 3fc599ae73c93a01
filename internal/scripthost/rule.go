// Package scripthost loads per-phase rule directories and evaluates them
// against a frozen tile snapshot, producing proposed mutations for the
// Phase Executor to apply. Scripts are expressed as govaluate statements
// rather than a general-purpose embedded language, matching the bounded,
// sandboxable surface the mutation pipeline needs.
package scripthost

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"worldground/internal/tile"
	"worldground/internal/worlderr"
)

// Rule is one loaded rule file: its filename (the deterministic identity
// used for execution order and last-writer-wins resolution) and its
// statements in file order.
type Rule struct {
	Name       string
	Statements []string
}

// phaseDirName maps a phase to its rule subdirectory name.
func phaseDirName(p tile.PhaseName) string { return string(p) }

// Load reads every phase-specific rule directory under root. A missing
// directory for one of the scripted phases is a load error; an existing
// but empty directory is a legal no-op for that phase.
func Load(root string) (map[tile.PhaseName][]Rule, error) {
	rules := make(map[tile.PhaseName][]Rule, len(tile.ScriptedPhases))
	for _, phase := range tile.ScriptedPhases {
		dir := filepath.Join(root, phaseDirName(phase))
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			return nil, worlderr.NewLoadError(worlderr.CodeMissingPhaseDir,
				fmt.Sprintf("required rule directory missing for phase %s", phase), err)
		}
		loaded, err := loadDir(dir)
		if err != nil {
			return nil, err
		}
		rules[phase] = loaded
	}
	return rules, nil
}

func loadDir(dir string) ([]Rule, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, worlderr.NewLoadError(worlderr.CodeMissingPhaseDir, "cannot read rule directory", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".rule") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	rules := make([]Rule, 0, len(names))
	for _, name := range names {
		statements, err := readStatements(filepath.Join(dir, name))
		if err != nil {
			return nil, worlderr.NewLoadError(worlderr.CodeMalformedRule, "cannot read rule file "+name, err)
		}
		rules = append(rules, Rule{Name: name, Statements: statements})
	}
	return rules, nil
}

func readStatements(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var statements []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		statements = append(statements, line)
	}
	return statements, scanner.Err()
}
