package config

import (
	"regexp"
	"strings"
)

// SensitivePattern represents a pattern that might indicate a hardcoded credential.
type SensitivePattern struct {
	Name        string
	Pattern     *regexp.Regexp
	Description string
}

var sensitivePatterns = []SensitivePattern{
	{
		Name:        "Token",
		Pattern:     regexp.MustCompile(`(?i)(token|auth[_-]?token|access[_-]?token|bearer)\s*=\s*['"][a-zA-Z0-9_-]{15,}['"]`),
		Description: "Potential authentication token detected",
	},
	{
		Name:        "GitHub Token",
		Pattern:     regexp.MustCompile(`(gh[pousr]_[a-zA-Z0-9]{36,}|github_pat_[a-zA-Z0-9_]{22,})`),
		Description: "Potential GitHub token detected",
	},
}

// SensitiveDataFinding represents a detected sensitive data instance
type SensitiveDataFinding struct {
	PatternName string
	Description string
	Line        int
	Preview     string // Redacted preview of the match
}

// DetectSensitiveData scans configuration content for hardcoded credentials.
// Each line is reported at most once.
func DetectSensitiveData(content string) []SensitiveDataFinding {
	var findings []SensitiveDataFinding

	for lineNum, line := range strings.Split(content, "\n") {
		for _, pattern := range sensitivePatterns {
			if !pattern.Pattern.MatchString(line) {
				continue
			}
			findings = append(findings, SensitiveDataFinding{
				PatternName: pattern.Name,
				Description: pattern.Description,
				Line:        lineNum + 1,
				Preview:     redactSensitiveValue(line),
			})
			break
		}
	}

	return findings
}

// redactSensitiveValue keeps the key of an assignment and hides its value.
func redactSensitiveValue(line string) string {
	eqIdx := strings.Index(line, "=")
	if eqIdx == -1 {
		return "[REDACTED]"
	}
	return strings.TrimSpace(line[:eqIdx]) + " = [REDACTED]"
}
