package apply

import (
	"slices"
	"strings"
)

// PreflightResult contains a list of warnings, errors, and transactionality info about migration.
type PreflightResult struct {
	Warnings        []Warning
	Errors          []string
	IsTransactional bool
	NonTxReasons    []string
}

// Warning contains a Level of a warning, message, and actual SQL from migration.
type Warning struct {
	Level   WarningLevel
	Message string
	SQL     string
}

// WarningLevel is a const that is expandable for later and contains different levels of danger.
type WarningLevel string

const (
	WarnCaution WarningLevel = "CAUTION"
	WarnDanger  WarningLevel = "DANGER"
)

// ddlKeywords start statements that Oracle commits implicitly, before and
// after they run. A transaction cannot contain them.
var ddlKeywords = []string{
	"CREATE", "ALTER", "DROP", "TRUNCATE", "RENAME", "COMMENT", "GRANT", "REVOKE", "PURGE", "FLASHBACK", "ANALYZE",
}

// PreflightChecks classifies statements by their leading keywords. Dropping
// or truncating data is an error unless unsafe is set, and any DDL makes the
// migration non-transactional.
func PreflightChecks(statements []string, unsafe bool) *PreflightResult {
	res := &PreflightResult{IsTransactional: true}
	for _, stmt := range statements {
		words := strings.Fields(strings.ToUpper(stmt))
		if len(words) == 0 {
			continue
		}
		short := truncateSQL(stmt)

		if slices.Contains(ddlKeywords, words[0]) {
			res.IsTransactional = false
			res.NonTxReasons = append(res.NonTxReasons, "implicit commit: "+short)
		}

		switch {
		case words[0] == "DROP" && len(words) > 1 && words[1] == "TABLE",
			words[0] == "TRUNCATE",
			words[0] == "DELETE" && !slices.Contains(words, "WHERE"),
			words[0] == "ALTER" && slices.Contains(words, "DROP") && slices.Contains(words, "COLUMN"):
			res.Warnings = append(res.Warnings, Warning{Level: WarnDanger, Message: "statement removes data", SQL: short})
			if !unsafe {
				res.Errors = append(res.Errors, "destructive operation requires --unsafe: "+short)
			}
		case words[0] == "DROP":
			res.Warnings = append(res.Warnings, Warning{Level: WarnCaution, Message: "statement drops a schema object", SQL: short})
		}
	}
	return res
}

// HasDestructiveOperations checks if there is a dangerous warning inside a preflight
// analysis of a migration. If it has returns true, otherwise false.
func HasDestructiveOperations(preflight *PreflightResult) bool {
	for _, w := range preflight.Warnings {
		if w.Level == WarnDanger {
			return true
		}
	}
	return false
}
