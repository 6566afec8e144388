package config

import (
	"fmt"
	"os"
	"time"

	"user-ledger-go/internal/models"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v2"
)

// accrualPolicy is the YAML shape of an accrual policy file. All fields are
// optional; absent fields keep their env/default values.
type accrualPolicy struct {
	Rate          string `yaml:"rate"`
	CeilingFactor string `yaml:"ceiling_factor"`
	PageSize      int    `yaml:"page_size"`
	Interval      string `yaml:"interval"`
}

func applyPolicyFile(cfg *models.AccrualConfig, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("unable to read accrual policy file %s: %w", path, err)
	}

	var policy accrualPolicy
	if err := yaml.Unmarshal(data, &policy); err != nil {
		return fmt.Errorf("unable to parse accrual policy file %s: %w", path, err)
	}

	if policy.Rate != "" {
		rate, err := decimal.NewFromString(policy.Rate)
		if err != nil {
			return fmt.Errorf("invalid rate in %s: %q (%w)", path, policy.Rate, err)
		}
		cfg.Rate = rate
	}

	if policy.CeilingFactor != "" {
		factor, err := decimal.NewFromString(policy.CeilingFactor)
		if err != nil {
			return fmt.Errorf("invalid ceiling_factor in %s: %q (%w)", path, policy.CeilingFactor, err)
		}
		cfg.CeilingFactor = factor
	}

	if policy.PageSize > 0 {
		cfg.PageSize = policy.PageSize
	}

	if policy.Interval != "" {
		interval, err := time.ParseDuration(policy.Interval)
		if err != nil {
			return fmt.Errorf("invalid interval in %s: %q (%w)", path, policy.Interval, err)
		}
		cfg.Interval = interval
	}

	return nil
}
