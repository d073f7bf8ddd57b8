package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

const DefaultPolicyPath = ".storyscan.yaml"

type Policy struct {
	Workers           int      `yaml:"workers"`
	LogLevel          string   `yaml:"log_level"`
	LogFile           string   `yaml:"log_file"`
	RedactOutput      bool     `yaml:"redact_output"`
	RedactionPatterns []string `yaml:"redaction_patterns,omitempty"`
	DisabledChecks    []string `yaml:"disabled_checks,omitempty"`
	ServeAddr         string   `yaml:"serve_addr"`
	FailUnder         float64  `yaml:"fail_under"`
}

var policyCache struct {
	mu      sync.RWMutex
	path    string
	exists  bool
	modTime int64
	policy  Policy
}

func DefaultPolicy() Policy {
	return Policy{
		Workers:   1,
		LogLevel:  "info",
		ServeAddr: ":8080",
	}
}

// LoadPolicy reads the YAML policy at path (DefaultPolicyPath when empty).
// A missing file yields the defaults. Results are cached per path and
// modification time.
//
//	workers: 4
//	log_level: debug
//	log_file: logs/storyscan.log
//	redact_output: true
//	redaction_patterns:
//	  - 'promo-[0-9]+'
//	disabled_checks:
//	  - ASSET_STORY_ID_MISSING
//	serve_addr: ":9090"
//	fail_under: 6
func LoadPolicy(path string) (Policy, error) {
	if path == "" {
		path = DefaultPolicyPath
	}
	if absPath, err := filepath.Abs(path); err == nil {
		path = absPath
	}

	st, statErr := os.Stat(path)
	if statErr != nil {
		if !os.IsNotExist(statErr) {
			return DefaultPolicy(), fmt.Errorf("failed to stat policy: %w", statErr)
		}
		p := DefaultPolicy()
		policyCache.mu.Lock()
		policyCache.path = path
		policyCache.exists = false
		policyCache.modTime = 0
		policyCache.policy = p
		policyCache.mu.Unlock()
		return p, nil
	}

	modTime := st.ModTime().UnixNano()
	policyCache.mu.RLock()
	if policyCache.path == path && policyCache.exists && policyCache.modTime == modTime {
		cached := policyCache.policy
		policyCache.mu.RUnlock()
		return cached, nil
	}
	policyCache.mu.RUnlock()

	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultPolicy(), fmt.Errorf("failed to read policy: %w", err)
	}

	p := DefaultPolicy()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return DefaultPolicy(), fmt.Errorf("failed to unmarshal policy %s: %w", path, err)
	}
	p = normalize(p)

	policyCache.mu.Lock()
	policyCache.path = path
	policyCache.exists = true
	policyCache.modTime = modTime
	policyCache.policy = p
	policyCache.mu.Unlock()

	return p, nil
}

func normalize(p Policy) Policy {
	d := DefaultPolicy()
	if p.Workers < 1 {
		p.Workers = d.Workers
	}
	if p.LogLevel == "" {
		p.LogLevel = d.LogLevel
	}
	if p.ServeAddr == "" {
		p.ServeAddr = d.ServeAddr
	}
	if p.FailUnder < 0 {
		p.FailUnder = 0
	}
	return p
}

// SavePolicy writes p as YAML to path and drops any cached copy.
func SavePolicy(path string, p Policy) error {
	if path == "" {
		path = DefaultPolicyPath
	}
	data, err := yaml.Marshal(normalize(p))
	if err != nil {
		return fmt.Errorf("failed to encode policy: %w", err)
	}
	content := append([]byte("# storyscan policy\n\n"), data...)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("failed to write policy: %w", err)
	}

	if absPath, err := filepath.Abs(path); err == nil {
		path = absPath
	}
	policyCache.mu.Lock()
	if policyCache.path == path {
		policyCache.path = ""
	}
	policyCache.mu.Unlock()
	return nil
}
