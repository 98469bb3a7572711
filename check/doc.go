// Copyright © 2025 The pyvet authors

package check

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
)

// Doc returns a formatted documentation listing for every rule, suitable
// for help output. Each entry is the rule code, its message template, and
// its wrapped doc text.
func Doc() string {
	var b strings.Builder
	for _, rule := range lineRules {
		writeRuleDoc(&b, rule.Code, rule.Doc)
	}
	writeRuleDoc(&b, S010, "Argument names must be written in snake_case. The name is matched back to the first line containing it.")
	writeRuleDoc(&b, S011, "Bound variable names must be written in snake_case. The name is matched back to the first line containing it.")
	writeRuleDoc(&b, S012, "Default argument values must not be mutable containers (list, set, or dict displays and constructor calls).")
	return b.String()
}

func writeRuleDoc(b *strings.Builder, code Code, doc string) {
	fmt.Fprintf(b, "  %s  %s\n", code, strings.ReplaceAll(messages[code], "%s", "{}"))
	b.WriteString(indent.String(wordwrap.String(doc, 68), 8))
	b.WriteString("\n\n")
}
