package configs

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"tahfidz_backend/internals/constants"
)

// LoadThresholds mengembalikan tabel ambang default, ditimpa isi file YAML
// bila path tidak kosong. Format file:
//
//	manzil:
//	  metric: kelancaran
//	  threshold: 88
//	  pass: Lancar
//	  fail: Ulangi
func LoadThresholds(path string) (map[string]constants.ThresholdRule, error) {
	rules := constants.DefaultThresholds()
	if path == "" {
		return rules, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("baca file ambang %s: %w", path, err)
	}
	var overlay map[string]constants.ThresholdRule
	if err := yaml.Unmarshal(raw, &overlay); err != nil {
		return nil, fmt.Errorf("parse file ambang %s: %w", path, err)
	}

	for name, rule := range overlay {
		base, ok := rules[name]
		if !ok {
			return nil, fmt.Errorf("aturan ambang tidak dikenal: %q", name)
		}
		if rule.Metric != "" {
			if rule.Metric != constants.MetricRataRata && rule.Metric != constants.MetricKelancaran {
				return nil, fmt.Errorf("metric aturan %q tidak dikenal: %q", name, rule.Metric)
			}
			base.Metric = rule.Metric
		}
		if rule.Threshold != 0 {
			if rule.Threshold < 0 || rule.Threshold > 100 {
				return nil, fmt.Errorf("ambang aturan %q harus 0..100", name)
			}
			base.Threshold = rule.Threshold
		}
		if rule.PassLabel != "" {
			base.PassLabel = rule.PassLabel
		}
		if rule.FailLabel != "" {
			base.FailLabel = rule.FailLabel
		}
		rules[name] = base
	}
	return rules, nil
}
